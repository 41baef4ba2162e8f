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

// containedValues returns the values inside a container: the children of a
// sequence, or the field values of a struct.
func containedValues(v element.Element) []element.Element {
	if v.Type() != ion.StructType {
		return v.Elements()
	}
	//
	values := make([]element.Element, 0, len(v.Fields()))
	for _, f := range v.Fields() {
		values = append(values, f.Value)
	}
	//
	return values
}

// containsConstraint requires a container to contain every listed value.
type containsConstraint struct {
	expected []element.Element
}

func buildContains(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.ListType {
		return nil, fmt.Errorf("expected a list of values, found %v", operand.Type())
	}
	//
	return &containsConstraint{operand.Elements()}, nil
}

// Name implements schema.Constraint.
func (c *containsConstraint) Name() string {
	return "contains"
}

// Validate implements schema.Constraint.
func (c *containsConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsContainer() {
		return nullOrTypeViolation("contains", v, ctx, "a container")
	}
	//
	var (
		children []*schema.Violation
		values   = containedValues(v)
	)
	//
	for _, expected := range c.expected {
		found := false
		//
		for _, actual := range values {
			if element.Equal(expected, actual) {
				found = true
				break
			}
		}
		//
		if !found {
			children = append(children, schema.NewViolation("contains",
				schema.MissingValue, ctx.Path, "value doesn't contain %s", expected))
		}
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := schema.NewViolation("contains", schema.MissingValue, ctx.Path,
		"value doesn't contain all expected values")
	//
	return violation.WithChildren(children...)
}

// elementConstraint requires every contained value to match the referenced
// type; distinct:: additionally forbids duplicated values.
type elementConstraint struct {
	ref      TypeReference
	distinct bool
}

func buildElement(operand element.Element, env Env) (schema.Constraint, error) {
	ref, err := compileRef(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &elementConstraint{ref, operand.HasAnnotation("distinct")}, nil
}

// Name implements schema.Constraint.
func (c *elementConstraint) Name() string {
	return "element"
}

// Validate implements schema.Constraint.
func (c *elementConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsContainer() {
		return nullOrTypeViolation("element", v, ctx, "a container")
	}
	//
	var children []*schema.Violation
	//
	values := containedValues(v)
	//
	for i, value := range values {
		pushContainedPath(v, i, ctx)
		//
		if inner := c.ref.Check(value, ctx); inner != nil {
			violation := schema.NewViolation("element", schema.ElementMismatched, ctx.Path,
				"element doesn't match the type %s", c.ref.Name())
			children = append(children, violation.WithChildren(inner))
		}
		//
		if c.distinct {
			for j := 0; j < i; j++ {
				if element.Equal(values[j], value) {
					children = append(children, schema.NewViolation("element",
						schema.ElementNotDistinct, ctx.Path,
						"element %s appears more than once", value))
					//
					break
				}
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
	violation := schema.NewViolation("element", schema.ElementMismatched, ctx.Path,
		"one or more elements don't satisfy the element constraint")
	//
	return violation.WithChildren(children...)
}

func pushContainedPath(container element.Element, index int, ctx *schema.Context) {
	if container.Type() == ion.StructType {
		ctx.Path.Push(schema.FieldElement(container.Fields()[index].Name))
	} else {
		ctx.Path.Push(schema.IndexElement(index))
	}
}

// containerLengthConstraint requires the size of a container to lie within
// a non-negative integer range.
type containerLengthConstraint struct {
	rng isl.NonNegativeIntegerRange
}

func buildContainerLength(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := lengthRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &containerLengthConstraint{rng}, nil
}

// Name implements schema.Constraint.
func (c *containerLengthConstraint) Name() string {
	return "container_length"
}

// Validate implements schema.Constraint.
func (c *containerLengthConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsContainer() {
		return nullOrTypeViolation("container_length", v, ctx, "a container")
	}
	//
	length := uint64(v.Len())
	//
	if !c.rng.ContainsCount(length) {
		return schema.NewViolation("container_length", schema.InvalidLength, ctx.Path,
			"container length %d is not within the expected %s", length, c.rng)
	}
	//
	return nil
}

// lengthRange parses a non-negative integer range operand shared by the
// length constraints.
func lengthRange(operand element.Element, env Env) (isl.NonNegativeIntegerRange, error) {
	rng, err := isl.RangeFromElement(operand, isl.RangeTypeNonNegativeInteger, env.Version())
	if err != nil {
		return isl.NonNegativeIntegerRange{}, err
	}
	//
	lengths, ok := rng.(isl.NonNegativeIntegerRange)
	if !ok {
		return isl.NonNegativeIntegerRange{}, fmt.Errorf("expected a non-negative integer range")
	}
	//
	return lengths, nil
}
