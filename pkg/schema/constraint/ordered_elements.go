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

// orderedEntry is one entry of an ordered_elements sequence: a type
// reference plus the closed occurrence bounds [lo, hi] governing how many
// consecutive elements it may consume.
type orderedEntry struct {
	ref TypeReference
	lo  uint64
	hi  uint64
}

// orderedElementsConstraint matches the elements of a sequence against an
// ordered list of occurrence-quantified type references.
type orderedElementsConstraint struct {
	entries []orderedEntry
}

func buildOrderedElements(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.ListType {
		return nil, fmt.Errorf("expected a list of type references, found %v", operand.Type())
	}
	//
	var entries []orderedEntry
	//
	for _, el := range operand.Elements() {
		parsed, err := isl.ParseTypeRef(el, env.Version())
		if err != nil {
			return nil, err
		}
		//
		def, err := env.ResolveRef(parsed)
		if err != nil {
			return nil, err
		}
		// elements occur exactly once unless stated otherwise
		occurs := isl.RequiredOccurs()
		if parsed.Occurs != nil {
			occurs = *parsed.Occurs
		}
		//
		lo, hi := occurs.Bounds()
		entries = append(entries, orderedEntry{
			ref: NewTypeReference(def.ID(), def.Name(), parsed.Nullable),
			lo:  lo,
			hi:  hi,
		})
	}
	//
	return &orderedElementsConstraint{entries}, nil
}

// Name implements schema.Constraint.
func (c *orderedElementsConstraint) Name() string {
	return "ordered_elements"
}

// Validate implements schema.Constraint.
func (c *orderedElementsConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsSequence() {
		return nullOrTypeViolation("ordered_elements", v, ctx, "a list or sexp")
	}
	//
	if c.match(v.Elements(), 0, 0, 0, ctx) {
		return nil
	}
	//
	return schema.NewViolation("ordered_elements", schema.ElementMismatched, ctx.Path,
		"one or more elements don't match the ordered elements")
}

// match simulates the occurrence NFA.  The state is (next item, current
// entry, elements consumed by the current entry); consuming greedily is
// attempted before advancing to the next entry, and failure backtracks.
func (c *orderedElementsConstraint) match(items []element.Element, item int, entry int,
	count uint64, ctx *schema.Context) bool {
	// accept once both input and entries are exhausted
	if entry == len(c.entries) {
		return item == len(items)
	}
	//
	current := c.entries[entry]
	// greedy: consume another element against the current entry
	if item < len(items) && count < current.hi && c.accepts(current, items[item], item, ctx) {
		if c.match(items, item+1, entry, count+1, ctx) {
			return true
		}
	}
	// backtrack: advance to the next entry once this one is satisfied
	if count >= current.lo {
		return c.match(items, item, entry+1, 0, ctx)
	}
	//
	return false
}

func (c *orderedElementsConstraint) accepts(entry orderedEntry, item element.Element,
	index int, ctx *schema.Context) bool {
	ctx.Path.Push(schema.IndexElement(index))
	defer ctx.Path.Pop()
	//
	return entry.ref.Matches(item, ctx)
}
