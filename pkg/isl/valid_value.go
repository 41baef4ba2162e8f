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

import (
	"fmt"

	"github.com/consensys/go-ionschema/pkg/element"
)

// ValidValue is one operand of the valid_values constraint: either a
// number-or-timestamp range, or a concrete Ion value.
type ValidValue struct {
	rng Range
	el  element.Element
}

// RangeValidValue wraps a range operand.
func RangeValidValue(rng Range) ValidValue {
	return ValidValue{rng: rng}
}

// ElementValidValue wraps a concrete value operand.
func ElementValidValue(el element.Element) ValidValue {
	return ValidValue{el: el}
}

// ValidValueFromElement parses a valid_values operand.  The only annotation
// permitted on an operand is range::.
func ValidValueFromElement(el element.Element, version Version) (ValidValue, error) {
	if el.HasAnnotation("range") {
		rng, err := RangeFromElement(el, RangeTypeNumberOrTimestamp, version)
		if err != nil {
			return ValidValue{}, err
		}
		//
		return RangeValidValue(rng), nil
	}
	//
	for _, a := range el.Annotations() {
		if a != "range" {
			return ValidValue{}, fmt.Errorf(
				"annotations are not allowed for valid_values constraint except `range` annotation")
		}
	}
	//
	return ElementValidValue(el), nil
}

// Range returns the range operand, if this valid value is one.
func (v ValidValue) Range() (Range, bool) {
	return v.rng, v.rng != nil
}

// Element returns the concrete value operand, if this valid value is one.
func (v ValidValue) Element() (element.Element, bool) {
	return v.el, v.rng == nil
}

func (v ValidValue) String() string {
	if v.rng != nil {
		return v.rng.String()
	}

	return v.el.String()
}
