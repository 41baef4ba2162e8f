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
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
)

// BoundaryKind discriminates the three forms a range boundary can take.
type BoundaryKind uint8

// Available boundary kinds.
const (
	// BoundaryValue is a concrete (inclusive or exclusive) endpoint.
	BoundaryValue BoundaryKind = iota
	// BoundaryMin is the unbounded lower endpoint.
	BoundaryMin
	// BoundaryMax is the unbounded upper endpoint.
	BoundaryMax
)

// Boundary is one endpoint of a range: min, max, or a concrete value with
// an inclusivity.  Min and max are always inclusive.
type Boundary[T any] struct {
	kind      BoundaryKind
	value     T
	exclusive bool
}

// MinBoundary constructs the unbounded lower endpoint.
func MinBoundary[T any]() Boundary[T] {
	return Boundary[T]{kind: BoundaryMin}
}

// MaxBoundary constructs the unbounded upper endpoint.
func MaxBoundary[T any]() Boundary[T] {
	return Boundary[T]{kind: BoundaryMax}
}

// Inclusive constructs an inclusive endpoint.
func Inclusive[T any](value T) Boundary[T] {
	return Boundary[T]{kind: BoundaryValue, value: value}
}

// Exclusive constructs an exclusive endpoint.
func Exclusive[T any](value T) Boundary[T] {
	return Boundary[T]{kind: BoundaryValue, value: value, exclusive: true}
}

// Kind returns the boundary kind.
func (b Boundary[T]) Kind() BoundaryKind {
	return b.kind
}

// Value returns the concrete endpoint value; meaningless for min and max.
func (b Boundary[T]) Value() T {
	return b.value
}

// IsExclusive reports whether this endpoint excludes its own value.
func (b Boundary[T]) IsExclusive() bool {
	return b.exclusive
}

func (b Boundary[T]) format(fmtValue func(T) string) string {
	switch b.kind {
	case BoundaryMin:
		return "min"
	case BoundaryMax:
		return "max"
	default:
		if b.exclusive {
			return "exclusive::" + fmtValue(b.value)
		}
		//
		return fmtValue(b.value)
	}
}

// RangeImpl is a generic interval over any totally ordered domain.  The
// comparison and formatting functions are supplied per domain, keeping the
// interval logic itself domain-agnostic.
type RangeImpl[T any] struct {
	start    Boundary[T]
	end      Boundary[T]
	cmp      func(T, T) int
	fmtValue func(T) string
}

// newRangeImpl validates the construction invariants shared by all range
// domains: min/max orientation, ordering, and non-emptiness.
func newRangeImpl[T any](cmp func(T, T) int, fmtValue func(T) string,
	start Boundary[T], end Boundary[T]) (RangeImpl[T], error) {
	var empty RangeImpl[T]
	//
	switch {
	case start.kind == BoundaryMin && end.kind == BoundaryMax:
		return empty, fmt.Errorf("range boundaries can not be min and max together (i.e. range::[min, max] is not allowed)")
	case start.kind == BoundaryMax:
		return empty, fmt.Errorf("lower range boundary value must not be max")
	case end.kind == BoundaryMin:
		return empty, fmt.Errorf("upper range boundary value must not be min")
	}
	//
	if start.kind == BoundaryValue && end.kind == BoundaryValue {
		c := cmp(start.value, end.value)
		//
		if c > 0 {
			return empty, fmt.Errorf("lower range boundary value can not be bigger than upper range boundary")
		}
		//
		if c == 0 && (start.exclusive || end.exclusive) {
			return empty, fmt.Errorf("empty ranges are not allowed")
		}
	}
	//
	return RangeImpl[T]{start, end, cmp, fmtValue}, nil
}

// Start returns the lower endpoint.
func (r RangeImpl[T]) Start() Boundary[T] {
	return r.start
}

// End returns the upper endpoint.
func (r RangeImpl[T]) End() Boundary[T] {
	return r.end
}

// ContainsValue reports whether both endpoints admit the given value.
func (r RangeImpl[T]) ContainsValue(value T) bool {
	inLower := true
	//
	if r.start.kind == BoundaryValue {
		c := r.cmp(r.start.value, value)
		inLower = c < 0 || (c == 0 && !r.start.exclusive)
	}
	//
	inUpper := true
	//
	if r.end.kind == BoundaryValue {
		c := r.cmp(r.end.value, value)
		inUpper = c > 0 || (c == 0 && !r.end.exclusive)
	}
	//
	return inLower && inUpper
}

func (r RangeImpl[T]) String() string {
	return fmt.Sprintf("range::[ %s, %s ]", r.start.format(r.fmtValue), r.end.format(r.fmtValue))
}

// ============================================================================
// Concrete range domains
// ============================================================================

// Range is the tagged facade over the seven concrete range domains.  A range
// knows how to test an arbitrary element for membership: values that are
// null, or of a different Ion type than the range's domain, are never
// contained.
type Range interface {
	fmt.Stringer
	// Contains reports whether the given element lies within this range.
	Contains(el element.Element) bool
}

// IntegerRange is a range over arbitrary-precision integers.
type IntegerRange struct {
	RangeImpl[*big.Int]
}

// NewIntegerRange constructs an integer range, additionally rejecting
// exclusive bounds with no integer between them.
func NewIntegerRange(start, end Boundary[*big.Int]) (IntegerRange, error) {
	if start.kind == BoundaryValue && end.kind == BoundaryValue &&
		start.exclusive && end.exclusive {
		var gap big.Int
		// (exclusive a, exclusive a+1) admits no integer
		if gap.Sub(end.value, start.value).Cmp(big.NewInt(1)) == 0 {
			return IntegerRange{}, fmt.Errorf("no valid values in the integer range")
		}
	}
	//
	rng, err := newRangeImpl(bigIntCmp, (*big.Int).String, start, end)
	//
	return IntegerRange{rng}, err
}

// Contains implements Range.
func (r IntegerRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.IntType {
		return false
	}

	return r.ContainsValue(el.Int())
}

// NonNegativeIntegerRange is a range over non-negative integers, used for
// lengths and occurrence counts.
type NonNegativeIntegerRange struct {
	RangeImpl[uint64]
}

// NewNonNegativeIntegerRange constructs a non-negative integer range,
// additionally rejecting exclusive bounds with no integer between them.
func NewNonNegativeIntegerRange(start, end Boundary[uint64]) (NonNegativeIntegerRange, error) {
	if start.kind == BoundaryValue && end.kind == BoundaryValue &&
		start.exclusive && end.exclusive && end.value > start.value && end.value-start.value == 1 {
		return NonNegativeIntegerRange{}, fmt.Errorf("no valid values in the integer range")
	}
	//
	rng, err := newRangeImpl(uint64Cmp, formatUint64, start, end)
	//
	return NonNegativeIntegerRange{rng}, err
}

// PointRange constructs the single-point non-negative range [n, n].
func PointRange(n uint64) NonNegativeIntegerRange {
	rng, _ := NewNonNegativeIntegerRange(Inclusive(n), Inclusive(n))
	//
	return rng
}

// OptionalOccurs is the default occurrence range of a struct field: [0, 1].
func OptionalOccurs() NonNegativeIntegerRange {
	rng, _ := NewNonNegativeIntegerRange(Inclusive[uint64](0), Inclusive[uint64](1))
	//
	return rng
}

// RequiredOccurs is the default occurrence range of an ordered element:
// [1, 1].
func RequiredOccurs() NonNegativeIntegerRange {
	return PointRange(1)
}

// Contains implements Range.
func (r NonNegativeIntegerRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.IntType {
		return false
	}
	//
	v := el.Int()
	if v.Sign() < 0 || !v.IsUint64() {
		return false
	}
	//
	return r.ContainsValue(v.Uint64())
}

// ContainsCount reports whether an occurrence count lies within the range.
func (r NonNegativeIntegerRange) ContainsCount(n uint64) bool {
	return r.ContainsValue(n)
}

// Bounds widens the endpoints into a closed [lo, hi] pair, mapping min to 0
// and max to the largest representable count.
func (r NonNegativeIntegerRange) Bounds() (uint64, uint64) {
	lo, hi := uint64(0), uint64(math.MaxUint64)
	//
	if r.start.kind == BoundaryValue {
		lo = r.start.value
		//
		if r.start.exclusive {
			lo++
		}
	}
	//
	if r.end.kind == BoundaryValue {
		hi = r.end.value
		//
		if r.end.exclusive {
			hi--
		}
	}
	//
	return lo, hi
}

// TimestampPrecisionRange is a range over timestamp precisions.
type TimestampPrecisionRange struct {
	RangeImpl[TimestampPrecision]
}

// NewTimestampPrecisionRange constructs a timestamp precision range.
func NewTimestampPrecisionRange(start, end Boundary[TimestampPrecision]) (TimestampPrecisionRange, error) {
	rng, err := newRangeImpl(TimestampPrecision.Cmp, TimestampPrecision.String, start, end)
	//
	return TimestampPrecisionRange{rng}, err
}

// Contains implements Range.
func (r TimestampPrecisionRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.TimestampType {
		return false
	}

	return r.ContainsValue(TimestampPrecisionOf(el.Timestamp()))
}

// ContainsPrecision reports whether the given precision lies within the
// range.
func (r TimestampPrecisionRange) ContainsPrecision(p TimestampPrecision) bool {
	return r.ContainsValue(p)
}

// TimestampRange is a range over timestamps, compared by instant.
type TimestampRange struct {
	RangeImpl[element.Timestamp]
}

// NewTimestampRange constructs a timestamp range.
func NewTimestampRange(start, end Boundary[element.Timestamp]) (TimestampRange, error) {
	rng, err := newRangeImpl(element.Timestamp.Compare, element.Timestamp.String, start, end)
	//
	return TimestampRange{rng}, err
}

// Contains implements Range.
func (r TimestampRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.TimestampType {
		return false
	}

	return r.ContainsValue(el.Timestamp())
}

// DecimalRange is a range over decimals.
type DecimalRange struct {
	RangeImpl[*ion.Decimal]
}

// NewDecimalRange constructs a decimal range.
func NewDecimalRange(start, end Boundary[*ion.Decimal]) (DecimalRange, error) {
	rng, err := newRangeImpl(decimalCmp, (*ion.Decimal).String, start, end)
	//
	return DecimalRange{rng}, err
}

// Contains implements Range.
func (r DecimalRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.DecimalType {
		return false
	}

	return r.ContainsValue(el.Decimal())
}

// FloatRange is a range over binary64 floats.
type FloatRange struct {
	RangeImpl[float64]
}

// NewFloatRange constructs a float range.
func NewFloatRange(start, end Boundary[float64]) (FloatRange, error) {
	rng, err := newRangeImpl(floatCmp, formatFloat, start, end)
	//
	return FloatRange{rng}, err
}

// Contains implements Range.
func (r FloatRange) Contains(el element.Element) bool {
	if el.IsNull() || el.Type() != ion.FloatType {
		return false
	}

	return r.ContainsValue(el.Float())
}

// NumberRange is a range over the unified numeric tower: it admits ints,
// floats and decimals alike, comparing them as arbitrary-precision
// decimals.
type NumberRange struct {
	RangeImpl[Number]
}

// NewNumberRange constructs a number range.
func NewNumberRange(start, end Boundary[Number]) (NumberRange, error) {
	rng, err := newRangeImpl(Number.Cmp, Number.String, start, end)
	//
	return NumberRange{rng}, err
}

// Contains implements Range.
func (r NumberRange) Contains(el element.Element) bool {
	if el.IsNull() || !el.IsNumeric() {
		return false
	}
	//
	number, err := NumberFromElement(el)
	if err != nil {
		// NaN and infinities lie outside every number range
		return false
	}
	//
	return r.ContainsValue(number)
}

// ============================================================================
// Domain comparators
// ============================================================================

func bigIntCmp(a, b *big.Int) int {
	return a.Cmp(b)
}

func uint64Cmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func decimalCmp(a, b *ion.Decimal) int {
	return a.Cmp(b)
}

func floatCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func formatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatFloat(v float64) string {
	text := strconv.FormatFloat(v, 'e', -1, 64)
	// ensure the text form reads back as an Ion float
	if !strings.ContainsAny(text, "eE") {
		text += "e0"
	}
	//
	return text
}
