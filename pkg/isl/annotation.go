// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package isl

import "github.com/consensys/go-ionschema/pkg/element"

// Annotation is a single entry of the annotations constraint: a symbol plus
// whether its occurrence on a value is required or merely permitted.  The
// two ISL dialects encode requiredness differently but share this model.
type Annotation struct {
	Value    string
	Required bool
}

// NewAnnotation constructs an annotation entry.
func NewAnnotation(value string, required bool) Annotation {
	return Annotation{Value: value, Required: required}
}

// AnnotationRequired determines whether an ISL 1.0 annotation entry is
// required, given the list-level default.  A per-entry required:: or
// optional:: annotation overrides the list-level modifier.
func AnnotationRequired(value element.Element, listLevelRequired bool) bool {
	if value.HasAnnotation("required") {
		return true
	}
	//
	if listLevelRequired {
		return !value.HasAnnotation("optional")
	}
	// by default an annotation is optional
	return false
}
