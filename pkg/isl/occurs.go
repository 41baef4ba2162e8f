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
package isl

import (
	"fmt"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
)

// ParseOccurs parses the occurs field of an ordered_elements entry or a
// fields entry: a positive integer, the symbols optional and required, or a
// non-negative integer range.
func ParseOccurs(el element.Element, version Version) (NonNegativeIntegerRange, error) {
	var empty NonNegativeIntegerRange
	//
	if el.IsNull() {
		return empty, fmt.Errorf("occurs must be a positive integer, optional, required, or a range")
	}
	//
	switch el.Type() {
	case ion.SymbolType:
		switch el.Text() {
		case "optional":
			return OptionalOccurs(), nil
		case "required":
			return RequiredOccurs(), nil
		default:
			return empty, fmt.Errorf("unrecognized occurs value %s", el.Text())
		}
	case ion.IntType:
		if el.Int().Sign() <= 0 || !el.Int().IsUint64() {
			return empty, fmt.Errorf("occurs must be a positive integer, found %s", el.Int())
		}
		//
		return PointRange(el.Int().Uint64()), nil
	case ion.ListType:
		rng, err := RangeFromElement(el, RangeTypeNonNegativeInteger, version)
		if err != nil {
			return empty, err
		}
		//
		occurs, ok := rng.(NonNegativeIntegerRange)
		if !ok {
			return empty, fmt.Errorf("occurs range must be a non-negative integer range")
		}
		//
		return occurs, nil
	default:
		return empty, fmt.Errorf("occurs must be a positive integer, optional, required, or a range")
	}
}
