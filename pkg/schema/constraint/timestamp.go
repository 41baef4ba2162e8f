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

// timestampPrecisionConstraint requires the precision of a timestamp to lie
// within a timestamp precision range.
type timestampPrecisionConstraint struct {
	rng isl.TimestampPrecisionRange
}

func buildTimestampPrecision(operand element.Element, env Env) (schema.Constraint, error) {
	rng, err := isl.RangeFromElement(operand, isl.RangeTypeTimestampPrecision, env.Version())
	if err != nil {
		return nil, err
	}
	//
	precisions, ok := rng.(isl.TimestampPrecisionRange)
	if !ok {
		return nil, fmt.Errorf("expected a timestamp precision range")
	}
	//
	return &timestampPrecisionConstraint{precisions}, nil
}

// Name implements schema.Constraint.
func (c *timestampPrecisionConstraint) Name() string {
	return "timestamp_precision"
}

// Validate implements schema.Constraint.
func (c *timestampPrecisionConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.TimestampType {
		return nullOrTypeViolation("timestamp_precision", v, ctx, "a timestamp")
	}
	//
	precision := isl.TimestampPrecisionOf(v.Timestamp())
	//
	if !c.rng.ContainsPrecision(precision) {
		return schema.NewViolation("timestamp_precision", schema.InvalidValue, ctx.Path,
			"timestamp precision %s is not within the expected %s", precision, c.rng)
	}
	//
	return nil
}

// timestampOffsetConstraint requires the offset of a timestamp to be one of
// an enumerated set of offsets.
type timestampOffsetConstraint struct {
	offsets []isl.TimestampOffset
}

func buildTimestampOffset(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.ListType {
		return nil, fmt.Errorf("expected a list of offsets, found %v", operand.Type())
	}
	//
	var offsets []isl.TimestampOffset
	//
	for _, el := range operand.Elements() {
		if el.IsNull() || el.Type() != ion.StringType {
			return nil, fmt.Errorf("`timestamp_offset` values must be strings")
		}
		//
		offset, err := isl.ParseTimestampOffset(el.Text())
		if err != nil {
			return nil, err
		}
		//
		offsets = append(offsets, offset)
	}
	//
	if len(offsets) == 0 {
		return nil, fmt.Errorf("`timestamp_offset` requires at least one offset")
	}
	//
	return &timestampOffsetConstraint{offsets}, nil
}

// Name implements schema.Constraint.
func (c *timestampOffsetConstraint) Name() string {
	return "timestamp_offset"
}

// Validate implements schema.Constraint.
func (c *timestampOffsetConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || v.Type() != ion.TimestampType {
		return nullOrTypeViolation("timestamp_offset", v, ctx, "a timestamp")
	}
	//
	observed := isl.TimestampOffsetOf(v.Timestamp())
	//
	for _, offset := range c.offsets {
		if offset == observed {
			return nil
		}
	}
	//
	return schema.NewViolation("timestamp_offset", schema.InvalidValue, ctx.Path,
		"timestamp offset %s is not one of the expected offsets", observed)
}
