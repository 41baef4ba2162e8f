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
	"unicode/utf8"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// byteLengthConstraint requires the byte count of a clob or blob to lie
// within a non-negative integer range.
type byteLengthConstraint struct {
	rng isl.NonNegativeIntegerRange
}

func buildByteLength(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := lengthRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &byteLengthConstraint{rng}, nil
}

// Name implements schema.Constraint.
func (c *byteLengthConstraint) Name() string {
	return "byte_length"
}

// Validate implements schema.Constraint.
func (c *byteLengthConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsLob() {
		return nullOrTypeViolation("byte_length", v, ctx, "a clob or blob")
	}
	//
	length := uint64(len(v.Bytes()))
	//
	if !c.rng.ContainsCount(length) {
		return schema.NewViolation("byte_length", schema.InvalidLength, ctx.Path,
			"byte length %d is not within the expected %s", length, c.rng)
	}
	//
	return nil
}

// codepointLengthConstraint requires the Unicode scalar count of a string
// or symbol to lie within a non-negative integer range.
type codepointLengthConstraint struct {
	rng isl.NonNegativeIntegerRange
}

func buildCodepointLength(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := lengthRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &codepointLengthConstraint{rng}, nil
}

// Name implements schema.Constraint.
func (c *codepointLengthConstraint) Name() string {
	return "codepoint_length"
}

// Validate implements schema.Constraint.
func (c *codepointLengthConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsText() {
		return nullOrTypeViolation("codepoint_length", v, ctx, "a string or symbol")
	}
	//
	length := uint64(utf8.RuneCountInString(v.Text()))
	//
	if !c.rng.ContainsCount(length) {
		return schema.NewViolation("codepoint_length", schema.InvalidLength, ctx.Path,
			"codepoint length %d is not within the expected %s", length, c.rng)
	}
	//
	return nil
}

// utf8ByteLengthConstraint requires the UTF-8 encoded byte count of a
// string or symbol to lie within a non-negative integer range.
type utf8ByteLengthConstraint struct {
	rng isl.NonNegativeIntegerRange
}

func buildUtf8ByteLength(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := lengthRange(operand, env)
	if err != nil {
		return nil, err
	}
	//
	return &utf8ByteLengthConstraint{rng}, nil
}

// Name implements schema.Constraint.
func (c *utf8ByteLengthConstraint) Name() string {
	return "utf8_byte_length"
}

// Validate implements schema.Constraint.
func (c *utf8ByteLengthConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsText() {
		return nullOrTypeViolation("utf8_byte_length", v, ctx, "a string or symbol")
	}
	//
	length := uint64(len(v.Text()))
	//
	if !c.rng.ContainsCount(length) {
		return schema.NewViolation("utf8_byte_length", schema.InvalidLength, ctx.Path,
			"utf8 byte length %d is not within the expected %s", length, c.rng)
	}
	//
	return nil
}
