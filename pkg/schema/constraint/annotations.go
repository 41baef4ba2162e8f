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

// annotationsConstraint checks the annotations of a value against a list of
// annotation entries.  In ISL 1.0 the list carries required::/optional::
// modifiers per entry plus list-level required::, closed:: and ordered::
// modifiers; in ISL 2.0 the list-level closed:: and required:: modifiers
// apply to every entry, or the operand is an arbitrary type the annotation
// list (as a list of symbols) must match.
type annotationsConstraint struct {
	entries []isl.Annotation
	closed  bool
	ordered bool
	// ISL 2.0 nested-type form
	ref *TypeReference
}

func buildAnnotations(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() {
		return nil, fmt.Errorf("expected a list of annotations, found null")
	}
	//
	if env.Version() == isl.V2_0 {
		return buildAnnotations2(operand, env)
	}
	//
	if operand.Type() != ion.ListType {
		return nil, fmt.Errorf("expected a list of annotations, found %v", operand.Type())
	}
	//
	constraint := &annotationsConstraint{
		closed:  operand.HasAnnotation("closed"),
		ordered: operand.HasAnnotation("ordered"),
	}
	//
	listLevelRequired := operand.HasAnnotation("required")
	//
	for _, el := range operand.Elements() {
		if el.IsNull() || el.Type() != ion.SymbolType {
			return nil, fmt.Errorf("annotations must be symbols, found %v", el.Type())
		}
		//
		constraint.entries = append(constraint.entries,
			isl.NewAnnotation(el.Text(), isl.AnnotationRequired(el, listLevelRequired)))
	}
	//
	return constraint, nil
}

// buildAnnotations2 handles the ISL 2.0 encodings: a modifier-annotated
// list of symbols, or an inline type over the annotation list.
func buildAnnotations2(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.Type() == ion.ListType {
		closed := operand.HasAnnotation("closed")
		required := operand.HasAnnotation("required")
		//
		if !closed && !required {
			return nil, fmt.Errorf("annotations lists must be annotated closed:: or required::")
		}
		//
		constraint := &annotationsConstraint{closed: closed}
		//
		for _, el := range operand.Elements() {
			if el.IsNull() || el.Type() != ion.SymbolType {
				return nil, fmt.Errorf("annotations must be symbols, found %v", el.Type())
			}
			//
			constraint.entries = append(constraint.entries, isl.NewAnnotation(el.Text(), required))
		}
		//
		return constraint, nil
	}
	// nested-type form: the annotation list, viewed as a list of symbols,
	// must match the given type
	ref, err := compileRef(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &annotationsConstraint{ref: &ref}, nil
}

// Name implements schema.Constraint.
func (c *annotationsConstraint) Name() string {
	return "annotations"
}

// Validate implements schema.Constraint.
func (c *annotationsConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	annotations := v.Annotations()
	//
	if c.ref != nil {
		return c.validateNested(annotations, ctx)
	}
	//
	var children []*schema.Violation
	// required entries must be present
	for _, entry := range c.entries {
		if entry.Required && !contains(annotations, entry.Value) {
			children = append(children, schema.NewViolation("annotations",
				schema.MissingAnnotation, ctx.Path,
				"annotation %s is missing", entry.Value))
		}
	}
	// under closed::, every annotation must be declared
	if c.closed {
		for _, a := range annotations {
			if !c.declares(a) {
				children = append(children, schema.NewViolation("annotations",
					schema.UnexpectedAnnotation, ctx.Path,
					"unexpected annotation %s", a))
			}
		}
	}
	// under ordered::, declared annotations must appear in declaration
	// order
	if c.ordered && !c.inOrder(annotations) {
		children = append(children, schema.NewViolation("annotations",
			schema.AnnotationMismatched, ctx.Path,
			"annotations are not in the expected order"))
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := schema.NewViolation("annotations", schema.AnnotationMismatched, ctx.Path,
		"annotations don't satisfy the annotations constraint")
	//
	return violation.WithChildren(children...)
}

func (c *annotationsConstraint) validateNested(annotations []string, ctx *schema.Context) *schema.Violation {
	symbols := make([]element.Element, len(annotations))
	for i, a := range annotations {
		symbols[i] = element.NewSymbol(a)
	}
	//
	if inner := c.ref.Check(element.NewList(symbols...), ctx); inner != nil {
		violation := schema.NewViolation("annotations", schema.AnnotationMismatched,
			ctx.Path, "annotations don't match the type %s", c.ref.Name())
		//
		return violation.WithChildren(inner)
	}
	//
	return nil
}

func (c *annotationsConstraint) declares(annotation string) bool {
	for _, entry := range c.entries {
		if entry.Value == annotation {
			return true
		}
	}
	//
	return false
}

// inOrder reports whether the value's declared annotations form a
// subsequence of the declaration list.
func (c *annotationsConstraint) inOrder(annotations []string) bool {
	next := 0
	//
	for _, a := range annotations {
		if !c.declares(a) {
			continue
		}
		//
		found := false
		//
		for i := next; i < len(c.entries); i++ {
			if c.entries[i].Value == a {
				next, found = i+1, true
				break
			}
		}
		//
		if !found {
			return false
		}
	}
	//
	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	//
	return false
}
