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
	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// validValuesConstraint requires a value to equal one of the listed values,
// or to lie within one of the listed number/timestamp ranges.
type validValuesConstraint struct {
	values []isl.ValidValue
}

func buildValidValues(operand element.Element, env Env) (schema.Constraint, error) {
	var values []isl.ValidValue
	// a single range is accepted in place of a list
	if operand.Type() == ion.ListType && !operand.HasAnnotation("range") && !operand.IsNull() {
		for _, el := range operand.Elements() {
			value, err := isl.ValidValueFromElement(el, env.Version())
			if err != nil {
				return nil, err
			}
			//
			values = append(values, value)
		}
	} else {
		value, err := isl.ValidValueFromElement(operand, env.Version())
		if err != nil {
			return nil, err
		}
		//
		values = append(values, value)
	}
	//
	return &validValuesConstraint{values}, nil
}

// Name implements schema.Constraint.
func (c *validValuesConstraint) Name() string {
	return "valid_values"
}

// Validate implements schema.Constraint.
func (c *validValuesConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	for _, valid := range c.values {
		if rng, ok := valid.Range(); ok {
			if rng.Contains(v) {
				return nil
			}
			//
			continue
		}
		//
		if expected, ok := valid.Element(); ok && validValueEqual(v, expected) {
			return nil
		}
	}
	//
	return schema.NewViolation("valid_values", schema.InvalidValue, ctx.Path,
		"value %s is not one of the valid values", v)
}

// validValueEqual compares a candidate against a listed value.  Top-level
// annotations are disregarded; ints and decimals compare by mathematical
// value, whilst floats only ever equal other floats denoting the same
// binary value.
func validValueEqual(candidate, expected element.Element) bool {
	if !candidate.IsNull() && !expected.IsNull() &&
		candidate.IsNumeric() && expected.IsNumeric() {
		candidateFloat := candidate.Type() == ion.FloatType
		expectedFloat := expected.Type() == ion.FloatType
		//
		if candidateFloat != expectedFloat {
			return false
		}
		//
		if candidateFloat {
			a, errA := isl.NumberFromElement(candidate)
			b, errB := isl.NumberFromElement(expected)
			// NaN and infinities have no promotion; fall back to
			// strict datum equality
			if errA != nil || errB != nil {
				return element.EqualIgnoringAnnotations(candidate, expected)
			}
			//
			return a.Cmp(b) == 0
		}
		// int/decimal: mathematical value equality
		a, _ := isl.NumberFromElement(candidate)
		b, _ := isl.NumberFromElement(expected)
		//
		return a.Cmp(b) == 0
	}
	//
	return element.EqualIgnoringAnnotations(candidate, expected)
}
