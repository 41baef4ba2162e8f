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

// typeConstraint checks a value against a single referenced type.
type typeConstraint struct {
	ref TypeReference
}

func buildType(operand element.Element, env Env) (schema.Constraint, error) {
	ref, err := compileRef(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &typeConstraint{ref}, nil
}

// Name implements schema.Constraint.
func (c *typeConstraint) Name() string {
	return "type"
}

// Validate implements schema.Constraint.
func (c *typeConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	inner := c.ref.Check(v, ctx)
	if inner == nil {
		return nil
	}
	//
	code := schema.TypeMismatched
	//
	if v.IsNull() {
		code = schema.InvalidNull
	}
	//
	violation := schema.NewViolation("type", code, ctx.Path,
		"value doesn't match the type %s", c.ref.Name())
	//
	return violation.WithChildren(inner)
}

// allOfConstraint requires a value to match every listed type.
type allOfConstraint struct {
	refs []TypeReference
}

func buildAllOf(operand element.Element, env Env) (schema.Constraint, error) {
	refs, err := compileRefList(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &allOfConstraint{refs}, nil
}

// Name implements schema.Constraint.
func (c *allOfConstraint) Name() string {
	return "all_of"
}

// Validate implements schema.Constraint.
func (c *allOfConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	var children []*schema.Violation
	//
	for _, ref := range c.refs {
		if inner := ref.Check(v, ctx); inner != nil {
			children = append(children, inner)
		}
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := schema.NewViolation("all_of", schema.AllTypesNotMatched, ctx.Path,
		"value matches %d types, expected %d", len(c.refs)-len(children), len(c.refs))
	//
	return violation.WithChildren(children...)
}

// anyOfConstraint requires a value to match at least one listed type.
type anyOfConstraint struct {
	refs []TypeReference
}

func buildAnyOf(operand element.Element, env Env) (schema.Constraint, error) {
	refs, err := compileRefList(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &anyOfConstraint{refs}, nil
}

// Name implements schema.Constraint.
func (c *anyOfConstraint) Name() string {
	return "any_of"
}

// Validate implements schema.Constraint.
func (c *anyOfConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	var children []*schema.Violation
	//
	for _, ref := range c.refs {
		inner := ref.Check(v, ctx)
		if inner == nil {
			return nil
		}
		//
		children = append(children, inner)
	}
	//
	violation := schema.NewViolation("any_of", schema.NoTypesMatched, ctx.Path,
		"value matches none of the types")
	//
	return violation.WithChildren(children...)
}

// oneOfConstraint requires a value to match exactly one listed type.
type oneOfConstraint struct {
	refs []TypeReference
}

func buildOneOf(operand element.Element, env Env) (schema.Constraint, error) {
	refs, err := compileRefList(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &oneOfConstraint{refs}, nil
}

// Name implements schema.Constraint.
func (c *oneOfConstraint) Name() string {
	return "one_of"
}

// Validate implements schema.Constraint.
func (c *oneOfConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	var (
		children []*schema.Violation
		matched  []string
	)
	//
	for _, ref := range c.refs {
		if inner := ref.Check(v, ctx); inner != nil {
			children = append(children, inner)
		} else {
			matched = append(matched, ref.Name())
		}
	}
	//
	switch len(matched) {
	case 1:
		return nil
	case 0:
		violation := schema.NewViolation("one_of", schema.NoTypesMatched, ctx.Path,
			"value matches none of the types")
		//
		return violation.WithChildren(children...)
	default:
		return schema.NewViolation("one_of", schema.MoreThanOneTypeMatched, ctx.Path,
			"value matches %d types, expected 1", len(matched))
	}
}

// notConstraint requires a value to not match the referenced type.
type notConstraint struct {
	ref TypeReference
}

func buildNot(operand element.Element, env Env) (schema.Constraint, error) {
	ref, err := compileRef(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &notConstraint{ref}, nil
}

// Name implements schema.Constraint.
func (c *notConstraint) Name() string {
	return "not"
}

// Validate implements schema.Constraint.
func (c *notConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if c.ref.Matches(v, ctx) {
		return schema.NewViolation("not", schema.TypeMatched, ctx.Path,
			"value unexpectedly matches the type %s", c.ref.Name())
	}
	//
	return nil
}
