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

	"github.com/consensys/go-ionschema/pkg/element"
)

// TimestampPrecision is the precision of an Ion timestamp, totally ordered
// by an integer rank.  The named precisions map onto fixed ranks; any other
// fractional second scale maps onto its own rank, so second < millisecond <
// 10e-4 fractional seconds < microsecond, and so on.
type TimestampPrecision struct {
	rank int
}

// The named precisions.  "hour" is accepted as an input alias for minute.
var (
	PrecisionYear        = TimestampPrecision{-4}
	PrecisionMonth       = TimestampPrecision{-3}
	PrecisionDay         = TimestampPrecision{-2}
	PrecisionMinute      = TimestampPrecision{-1}
	PrecisionSecond      = TimestampPrecision{0}
	PrecisionMillisecond = TimestampPrecision{3}
	PrecisionMicrosecond = TimestampPrecision{6}
	PrecisionNanosecond  = TimestampPrecision{9}
)

// PrecisionOtherFractionalSeconds constructs the precision of fractional
// seconds with the given decimal scale.
func PrecisionOtherFractionalSeconds(scale int) TimestampPrecision {
	return TimestampPrecision{scale}
}

// TimestampPrecisionOf determines the precision a timestamp value was
// written with.
func TimestampPrecisionOf(ts element.Timestamp) TimestampPrecision {
	switch ts.Unit {
	case element.UnitYear:
		return PrecisionYear
	case element.UnitMonth:
		return PrecisionMonth
	case element.UnitDay:
		return PrecisionDay
	case element.UnitMinute:
		return PrecisionMinute
	default:
		return TimestampPrecision{ts.FracDigits}
	}
}

// ParseTimestampPrecision maps a precision symbol onto its precision.
func ParseTimestampPrecision(symbol string) (TimestampPrecision, error) {
	switch symbol {
	case "year":
		return PrecisionYear, nil
	case "month":
		return PrecisionMonth, nil
	case "day":
		return PrecisionDay, nil
	case "minute", "hour":
		return PrecisionMinute, nil
	case "second":
		return PrecisionSecond, nil
	case "millisecond":
		return PrecisionMillisecond, nil
	case "microsecond":
		return PrecisionMicrosecond, nil
	case "nanosecond":
		return PrecisionNanosecond, nil
	default:
		return TimestampPrecision{}, fmt.Errorf("invalid timestamp precision specified %s", symbol)
	}
}

// Cmp totally orders two precisions by rank.
func (p TimestampPrecision) Cmp(o TimestampPrecision) int {
	switch {
	case p.rank < o.rank:
		return -1
	case p.rank > o.rank:
		return 1
	default:
		return 0
	}
}

func (p TimestampPrecision) String() string {
	switch p.rank {
	case -4:
		return "year"
	case -3:
		return "month"
	case -2:
		return "day"
	case -1:
		return "minute"
	case 0:
		return "second"
	case 3:
		return "millisecond"
	case 6:
		return "microsecond"
	case 9:
		return "nanosecond"
	default:
		return fmt.Sprintf("fractional second (10e%d)", -p.rank)
	}
}

// TimestampOffset is the offset of an Ion timestamp: either a known offset
// from UTC in minutes, or the unknown local offset written -00:00.
type TimestampOffset struct {
	known   bool
	minutes int
}

// KnownOffset constructs a known offset from its value in minutes.
func KnownOffset(minutes int) TimestampOffset {
	return TimestampOffset{known: true, minutes: minutes}
}

// UnknownOffset is the unknown local offset.
var UnknownOffset = TimestampOffset{}

// ParseTimestampOffset parses an offset of the form "[+|-]hh:mm", where
// "-00:00" denotes the unknown offset.
func ParseTimestampOffset(text string) (TimestampOffset, error) {
	if text == "-00:00" {
		return UnknownOffset, nil
	}
	//
	if len(text) != 6 || text[3] != ':' {
		return TimestampOffset{}, fmt.Errorf("`timestamp_offset` values must be of the form \"[+|-]hh:mm\"")
	}
	//
	var sign int
	//
	switch text[0] {
	case '-':
		sign = -1
	case '+':
		sign = 1
	default:
		return TimestampOffset{}, fmt.Errorf("unrecognized `timestamp_offset` sign '%c'", text[0])
	}
	//
	var hours, minutes int
	//
	if _, err := fmt.Sscanf(text[1:], "%02d:%02d", &hours, &minutes); err != nil {
		return TimestampOffset{}, fmt.Errorf("invalid timestamp offset %s", text)
	}
	//
	if hours < 0 || hours >= 24 || minutes < 0 || minutes >= 60 {
		return TimestampOffset{}, fmt.Errorf("invalid timestamp offset %s", text)
	}
	//
	return KnownOffset(sign * (hours*60 + minutes)), nil
}

// TimestampOffsetOf returns the offset a timestamp value was written with.
func TimestampOffsetOf(ts element.Timestamp) TimestampOffset {
	if !ts.OffsetKnown {
		return UnknownOffset
	}

	return KnownOffset(ts.OffsetMinutes)
}

// Known reports whether this is a known offset and, if so, its value in
// minutes.
func (o TimestampOffset) Known() (int, bool) {
	return o.minutes, o.known
}

func (o TimestampOffset) String() string {
	if !o.known {
		return "-00:00"
	}
	//
	sign, minutes := "+", o.minutes
	//
	if minutes < 0 {
		sign, minutes = "-", -minutes
	}
	//
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
