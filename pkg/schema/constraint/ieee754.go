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

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// ieee754FloatConstraint requires a float to be exactly representable in a
// given IEEE-754 binary interchange format.
type ieee754FloatConstraint struct {
	format isl.Ieee754Format
}

func buildIeee754Float(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.SymbolType {
		return nil, fmt.Errorf("expected an interchange format symbol, found %v", operand.Type())
	}
	//
	format, err := isl.ParseIeee754Format(operand.Text())
	if err != nil {
		return nil, err
	}
	//
	return &ieee754FloatConstraint{format}, nil
}

// Name implements schema.Constraint.
func (c *ieee754FloatConstraint) Name() string {
	return "ieee754_float"
}

// Validate implements schema.Constraint.
func (c *ieee754FloatConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.FloatType {
		return nullOrTypeViolation("ieee754_float", v, ctx, "a float")
	}
	//
	if !c.format.Representable(v.Float()) {
		return schema.NewViolation("ieee754_float", schema.InvalidIeee754Float, ctx.Path,
			"value %v is not representable in %s", v.Float(), c.format)
	}
	//
	return nil
}
