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

// fieldEntry is one declared field: its type reference plus the occurrence
// bounds governing how many times the field name may appear.
type fieldEntry struct {
	name   string
	ref    TypeReference
	occurs isl.NonNegativeIntegerRange
}

// fieldsConstraint maps struct field names onto occurrence-quantified type
// references.  Under content: closed, undeclared field names are invalid.
type fieldsConstraint struct {
	entries []fieldEntry
	closed  bool
}

func buildFields(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.StructType {
		return nil, fmt.Errorf("expected a struct of field declarations, found %v", operand.Type())
	}
	//
	constraint := &fieldsConstraint{}
	seen := make(map[string]bool)
	//
	for _, f := range operand.Fields() {
		if seen[f.Name] {
			return nil, fmt.Errorf("fields can not declare field %s twice", f.Name)
		}
		//
		seen[f.Name] = true
		//
		parsed, err := isl.ParseTypeRef(f.Value, env.Version())
		if err != nil {
			return nil, err
		}
		//
		def, err := env.ResolveRef(parsed)
		if err != nil {
			return nil, err
		}
		// fields are optional unless stated otherwise
		occurs := isl.OptionalOccurs()
		if parsed.Occurs != nil {
			occurs = *parsed.Occurs
		}
		//
		constraint.entries = append(constraint.entries, fieldEntry{
			name:   f.Name,
			ref:    NewTypeReference(def.ID(), def.Name(), parsed.Nullable),
			occurs: occurs,
		})
	}
	//
	return constraint, nil
}

// Name implements schema.Constraint.
func (c *fieldsConstraint) Name() string {
	return "fields"
}

// Validate implements schema.Constraint.
func (c *fieldsConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.StructType {
		return nullOrTypeViolation("fields", v, ctx, "a struct")
	}
	//
	var children []*schema.Violation
	//
	for _, entry := range c.entries {
		children = append(children, c.checkEntry(entry, v, ctx)...)
	}
	//
	if c.closed {
		for _, f := range v.Fields() {
			if !c.declares(f.Name) {
				children = append(children, schema.NewViolation("fields",
					schema.InvalidOpenContent, ctx.Path,
					"found open content in struct: %s", f.Name))
			}
		}
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := schema.NewViolation("fields", schema.FieldsNotMatched, ctx.Path,
		"value didn't satisfy the fields constraint")
	//
	return violation.WithChildren(children...)
}

// checkEntry validates every occurrence of one declared field, plus its
// occurrence count.
func (c *fieldsConstraint) checkEntry(entry fieldEntry, v element.Element,
	ctx *schema.Context) []*schema.Violation {
	var (
		violations []*schema.Violation
		count      uint64
	)
	//
	for _, f := range v.Fields() {
		if f.Name != entry.name {
			continue
		}
		//
		count++
		//
		ctx.Path.Push(schema.FieldElement(f.Name))
		//
		if inner := entry.ref.Check(f.Value, ctx); inner != nil {
			violation := schema.NewViolation("fields", schema.FieldsNotMatched, ctx.Path,
				"field %s doesn't match the type %s", f.Name, entry.ref.Name())
			violations = append(violations, violation.WithChildren(inner))
		}
		//
		ctx.Path.Pop()
	}
	//
	if !entry.occurs.ContainsCount(count) {
		violations = append(violations, schema.NewViolation("fields",
			schema.FieldsNotMatched, ctx.Path,
			"field %s occurs %d times, expected %s", entry.name, count, entry.occurs))
	}
	//
	return violations
}

func (c *fieldsConstraint) declares(name string) bool {
	for _, entry := range c.entries {
		if entry.name == name {
			return true
		}
	}
	//
	return false
}
