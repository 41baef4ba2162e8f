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
	"math/big"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
)

// RangeType constrains which boundary values are admissible when parsing a
// range from its Ion form, and therefore which range domain results.
type RangeType uint8

// Available range types.
const (
	// RangeTypeAny admits integer, float, decimal and timestamp
	// boundaries, selecting the matching domain.
	RangeTypeAny RangeType = iota
	// RangeTypePrecision admits non-negative integers >= 1.
	RangeTypePrecision
	// RangeTypeNonNegativeInteger admits non-negative integers.
	RangeTypeNonNegativeInteger
	// RangeTypeTimestampPrecision admits timestamp precision symbols.
	RangeTypeTimestampPrecision
	// RangeTypeNumberOrTimestamp admits any numeric (promoted to Number)
	// or timestamp boundary.
	RangeTypeNumberOrTimestamp
)

func (t RangeType) String() string {
	switch t {
	case RangeTypePrecision:
		return "precision"
	case RangeTypeNonNegativeInteger:
		return "non-negative integer"
	case RangeTypeTimestampPrecision:
		return "timestamp precision"
	case RangeTypeNumberOrTimestamp:
		return "number or timestamp"
	default:
		return "any"
	}
}

// boundaryDomain identifies which range domain a parsed boundary belongs to.
type boundaryDomain uint8

const (
	domainNone boundaryDomain = iota
	domainInteger
	domainNonNegativeInteger
	domainTimestampPrecision
	domainFloat
	domainDecimal
	domainNumber
	domainTimestamp
)

// typedBoundary is a parsed range endpoint before the two endpoints are
// reconciled into a concrete domain.  Min and max carry no domain.
type typedBoundary struct {
	kind      BoundaryKind
	domain    boundaryDomain
	exclusive bool
	intVal    *big.Int
	uintVal   uint64
	precVal   TimestampPrecision
	floatVal  float64
	decVal    *ion.Decimal
	numberVal Number
	tsVal     element.Timestamp
}

// RangeFromElement parses the Ion form of a range: a bare integer
// (single-point), a bare precision symbol (timestamp precisions only), or a
// two-element list annotated range::.
func RangeFromElement(el element.Element, rangeType RangeType, version Version) (Range, error) {
	if el.IsNull() {
		return nil, fmt.Errorf("ranges can not be constructed for type %v", el.Type())
	}
	//
	switch el.Type() {
	case ion.IntType:
		return pointRangeFromInt(el, rangeType)
	case ion.SymbolType:
		if rangeType != RangeTypeTimestampPrecision {
			return nil, fmt.Errorf("%s ranges can not be constructed from value of type symbol", rangeType)
		}
		//
		precision, err := ParseTimestampPrecision(el.Text())
		if err != nil {
			return nil, err
		}
		//
		return NewTimestampPrecisionRange(Inclusive(precision), Inclusive(precision))
	case ion.ListType:
		if !el.HasAnnotation("range") {
			return nil, fmt.Errorf("an element representing a range must have the annotation `range`")
		}
		//
		items := el.Elements()
		if len(items) != 2 {
			return nil, fmt.Errorf("ranges must contain two values representing the minimum and maximum ends of range")
		}
		//
		start, err := parseBoundary(items[0], rangeType, version)
		if err != nil {
			return nil, err
		}
		//
		end, err := parseBoundary(items[1], rangeType, version)
		if err != nil {
			return nil, err
		}
		//
		return combineBoundaries(start, end)
	default:
		return nil, fmt.Errorf("ranges can not be constructed for type %v", el.Type())
	}
}

// pointRangeFromInt turns a bare integer into the single-point range the
// surrounding range type calls for.
func pointRangeFromInt(el element.Element, rangeType RangeType) (Range, error) {
	switch rangeType {
	case RangeTypePrecision, RangeTypeNonNegativeInteger:
		v, err := nonNegativeBoundaryValue(el.Int(), rangeType)
		if err != nil {
			return nil, err
		}
		//
		return NewNonNegativeIntegerRange(Inclusive(v), Inclusive(v))
	case RangeTypeTimestampPrecision:
		return nil, fmt.Errorf("timestamp precision ranges can not be constructed from value of type int")
	case RangeTypeNumberOrTimestamp:
		n := NumberFromInt(el.Int())
		//
		return NewNumberRange(Inclusive(n), Inclusive(n))
	default:
		v := el.Int()
		//
		return NewIntegerRange(Inclusive(v), Inclusive(v))
	}
}

// nonNegativeBoundaryValue validates an integer boundary for the
// non-negative domains.  Precision boundaries must be at least 1.
func nonNegativeBoundaryValue(v *big.Int, rangeType RangeType) (uint64, error) {
	minValue := int64(0)
	//
	if rangeType == RangeTypePrecision {
		minValue = 1
	}
	//
	if v.Cmp(big.NewInt(minValue)) < 0 || !v.IsUint64() {
		return 0, fmt.Errorf(
			"expected non negative integer greater than or equal to %d for range boundary values, found %s",
			minValue, v)
	}
	//
	return v.Uint64(), nil
}

// parseBoundary parses one endpoint of a range::[_, _] list.
func parseBoundary(el element.Element, rangeType RangeType, version Version) (typedBoundary, error) {
	var b typedBoundary
	//
	if el.IsNull() {
		return b, fmt.Errorf("unsupported range boundary type specified %v", el.Type())
	}
	//
	b.exclusive = el.HasAnnotation("exclusive")
	b.kind = BoundaryValue
	//
	switch el.Type() {
	case ion.SymbolType:
		switch el.Text() {
		case "min", "max":
			if b.exclusive {
				return b, fmt.Errorf("exclusive min or max are not allowed for range boundary values")
			}
			//
			if el.Text() == "min" {
				b.kind = BoundaryMin
			} else {
				b.kind = BoundaryMax
			}
			//
			return b, nil
		default:
			precision, err := ParseTimestampPrecision(el.Text())
			if err != nil {
				return b, err
			}
			//
			b.domain, b.precVal = domainTimestampPrecision, precision
			//
			return b, nil
		}
	case ion.IntType:
		switch rangeType {
		case RangeTypePrecision, RangeTypeNonNegativeInteger:
			v, err := nonNegativeBoundaryValue(el.Int(), rangeType)
			if err != nil {
				return b, err
			}
			//
			b.domain, b.uintVal = domainNonNegativeInteger, v
		case RangeTypeAny:
			b.domain, b.intVal = domainInteger, el.Int()
		case RangeTypeTimestampPrecision:
			return b, fmt.Errorf("timestamp precision ranges can not be constructed for integer boundary values")
		case RangeTypeNumberOrTimestamp:
			b.domain, b.numberVal = domainNumber, NumberFromInt(el.Int())
		}
		//
		return b, nil
	case ion.DecimalType:
		switch rangeType {
		case RangeTypeNumberOrTimestamp:
			b.domain, b.numberVal = domainNumber, NumberFromDecimal(el.Decimal())
		case RangeTypeAny:
			b.domain, b.decVal = domainDecimal, el.Decimal()
		default:
			return b, fmt.Errorf("%s ranges can not be constructed for decimal boundary values", rangeType)
		}
		//
		return b, nil
	case ion.FloatType:
		switch rangeType {
		case RangeTypeNumberOrTimestamp:
			number, err := NumberFromFloat(el.Float())
			if err != nil {
				return b, err
			}
			//
			b.domain, b.numberVal = domainNumber, number
		case RangeTypeAny:
			b.domain, b.floatVal = domainFloat, el.Float()
		default:
			return b, fmt.Errorf("%s ranges can not be constructed for float boundary values", rangeType)
		}
		//
		return b, nil
	case ion.TimestampType:
		if rangeType != RangeTypeNumberOrTimestamp && rangeType != RangeTypeAny {
			return b, fmt.Errorf("%s ranges can not be constructed for timestamp boundary values", rangeType)
		}
		// ISL 1.0 forbids boundaries with an unknown offset
		ts := el.Timestamp()
		if version == V1_0 && !ts.OffsetKnown {
			return b, fmt.Errorf("timestamp range boundary can not have an unknown offset")
		}
		//
		b.domain, b.tsVal = domainTimestamp, ts
		//
		return b, nil
	default:
		return b, fmt.Errorf("unsupported range boundary type specified %v", el.Type())
	}
}

// combineBoundaries reconciles the two endpoints into a concrete range,
// rejecting min/max misuse and mismatched boundary types.
func combineBoundaries(start, end typedBoundary) (Range, error) {
	if start.kind == BoundaryMin && end.kind == BoundaryMax {
		return nil, fmt.Errorf("range boundaries can not be min and max together (i.e. range::[min, max] is not allowed)")
	}
	//
	if start.kind == BoundaryMax {
		return nil, fmt.Errorf("lower range boundary value must not be max")
	}
	//
	if end.kind == BoundaryMin {
		return nil, fmt.Errorf("upper range boundary value must not be min")
	}
	// determine the domain from whichever endpoint carries one
	domain := start.domain
	if domain == domainNone {
		domain = end.domain
	}
	//
	if start.domain != domainNone && end.domain != domainNone && start.domain != end.domain {
		return nil, fmt.Errorf("range boundaries should have same types")
	}
	//
	switch domain {
	case domainInteger:
		return NewIntegerRange(boundaryOf(start, start.intVal), boundaryOf(end, end.intVal))
	case domainNonNegativeInteger:
		return NewNonNegativeIntegerRange(boundaryOf(start, start.uintVal), boundaryOf(end, end.uintVal))
	case domainTimestampPrecision:
		return NewTimestampPrecisionRange(boundaryOf(start, start.precVal), boundaryOf(end, end.precVal))
	case domainFloat:
		return NewFloatRange(boundaryOf(start, start.floatVal), boundaryOf(end, end.floatVal))
	case domainDecimal:
		return NewDecimalRange(boundaryOf(start, start.decVal), boundaryOf(end, end.decVal))
	case domainNumber:
		return NewNumberRange(boundaryOf(start, start.numberVal), boundaryOf(end, end.numberVal))
	case domainTimestamp:
		return NewTimestampRange(boundaryOf(start, start.tsVal), boundaryOf(end, end.tsVal))
	default:
		return nil, fmt.Errorf("unsupported range type specified")
	}
}

// boundaryOf lifts a typed boundary into the generic form for one domain.
func boundaryOf[T any](b typedBoundary, value T) Boundary[T] {
	switch b.kind {
	case BoundaryMin:
		return MinBoundary[T]()
	case BoundaryMax:
		return MaxBoundary[T]()
	default:
		if b.exclusive {
			return Exclusive(value)
		}
		//
		return Inclusive(value)
	}
}
