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
package constraint

import (
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// coreConstraint is the sole constraint of a built-in type definition.
type coreConstraint struct {
	core schema.CoreType
}

// Core lifts a built-in type into a constraint, making core types ordinary
// definitions in the type store.
func Core(core schema.CoreType) schema.Constraint {
	return &coreConstraint{core}
}

// Name implements schema.Constraint.
func (c *coreConstraint) Name() string {
	return c.core.Name()
}

// Validate implements schema.Constraint.
func (c *coreConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if c.core.Matches(v) {
		return nil
	}
	//
	if v.IsNull() {
		return schema.NewViolation(c.core.Name(), schema.InvalidNull, ctx.Path,
			"expected type %s, found null value", c.core.Name())
	}
	//
	return schema.NewViolation(c.core.Name(), schema.TypeMismatched, ctx.Path,
		"expected type %s, found %v", c.core.Name(), v.Type())
}
