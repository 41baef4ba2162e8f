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
	"github.com/consensys/go-ionschema/pkg/schema"
)

// fieldNamesConstraint requires every field name of a struct (viewed as a
// symbol) to match the referenced type; distinct:: additionally forbids
// repeated names.
type fieldNamesConstraint struct {
	ref      TypeReference
	distinct bool
}

func buildFieldNames(operand element.Element, env Env) (schema.Constraint, error) {
	ref, err := compileRef(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &fieldNamesConstraint{ref, operand.HasAnnotation("distinct")}, nil
}

// Name implements schema.Constraint.
func (c *fieldNamesConstraint) Name() string {
	return "field_names"
}

// Validate implements schema.Constraint.
func (c *fieldNamesConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.StructType {
		return nullOrTypeViolation("field_names", v, ctx, "a struct")
	}
	//
	var (
		children []*schema.Violation
		seen     = make(map[string]int)
	)
	//
	for _, f := range v.Fields() {
		ctx.Path.Push(schema.FieldElement(f.Name))
		//
		if inner := c.ref.Check(element.NewSymbol(f.Name), ctx); inner != nil {
			violation := schema.NewViolation("field_names", schema.FieldNamesMismatched,
				ctx.Path, "field name %s doesn't match the type %s", f.Name, c.ref.Name())
			children = append(children, violation.WithChildren(inner))
		}
		//
		if c.distinct {
			seen[f.Name]++
			//
			if seen[f.Name] == 2 {
				children = append(children, schema.NewViolation("field_names",
					schema.FieldNamesNotDistinct, ctx.Path,
					"field name %s appears more than once", f.Name))
			}
		}
		//
		ctx.Path.Pop()
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := schema.NewViolation("field_names", schema.FieldNamesMismatched, ctx.Path,
		"one or more field names don't satisfy the field_names constraint")
	//
	return violation.WithChildren(children...)
}
