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
	"fmt"
	"math/big"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// precisionConstraint requires the significant digit count of a decimal to
// lie within a range whose minimum is at least 1.
type precisionConstraint struct {
	rng isl.NonNegativeIntegerRange
}

func buildPrecision(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := isl.RangeFromElement(operand, isl.RangeTypePrecision, env.Version())
	if err != nil {
		return nil, err
	}
	//
	precisions, ok := rng.(isl.NonNegativeIntegerRange)
	if !ok {
		return nil, fmt.Errorf("expected a precision range")
	}
	//
	return &precisionConstraint{precisions}, nil
}

// Name implements schema.Constraint.
func (c *precisionConstraint) Name() string {
	return "precision"
}

// Validate implements schema.Constraint.
func (c *precisionConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.DecimalType {
		return nullOrTypeViolation("precision", v, ctx, "a decimal")
	}
	//
	precision := uint64(element.DecimalPrecision(v.Decimal()))
	//
	if !c.rng.ContainsCount(precision) {
		return schema.NewViolation("precision", schema.InvalidLength, ctx.Path,
			"decimal precision %d is not within the expected %s", precision, c.rng)
	}
	//
	return nil
}

// exponentKind distinguishes the ISL 1.0 scale constraint from the ISL 2.0
// exponent constraint.  The two inspect the same component of a decimal
// with opposite signs: scale is the negated exponent.
type exponentKind uint8

const (
	kindScale exponentKind = iota
	kindExponent
)

// exponentConstraint requires the (possibly negated) exponent of a decimal
// to lie within an integer range.
type exponentConstraint struct {
	kind exponentKind
	rng  isl.IntegerRange
}

func buildScale(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := integerRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &exponentConstraint{kindScale, rng}, nil
}

func buildExponent(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := integerRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &exponentConstraint{kindExponent, rng}, nil
}

// Name implements schema.Constraint.
func (c *exponentConstraint) Name() string {
	if c.kind == kindScale {
		return "scale"
	}

	return "exponent"
}

// Validate implements schema.Constraint.
func (c *exponentConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.DecimalType {
		return nullOrTypeViolation(c.Name(), v, ctx, "a decimal")
	}
	//
	_, exponent, _ := element.DecimalParts(v.Decimal())
	//
	observed := int64(exponent)
	if c.kind == kindScale {
		observed = -observed
	}
	//
	if !c.rng.ContainsValue(big.NewInt(observed)) {
		return schema.NewViolation(c.Name(), schema.InvalidLength, ctx.Path,
			"decimal %s %d is not within the expected %s", c.Name(), observed, c.rng)
	}
	//
	return nil
}

// integerRange parses an integer range operand.
func integerRange(operand element.Element, env Env) (isl.IntegerRange, error) {
	rng, err := isl.RangeFromElement(operand, isl.RangeTypeAny, env.Version())
	if err != nil {
		return isl.IntegerRange{}, err
	}
	//
	integers, ok := rng.(isl.IntegerRange)
	if !ok {
		return isl.IntegerRange{}, fmt.Errorf("expected an integer range")
	}
	//
	return integers, nil
}
