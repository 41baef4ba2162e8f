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
package element

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampUnit identifies the finest date/time component a timestamp was
// written with.  Fractional seconds are tracked separately via FracDigits.
type TimestampUnit uint8

// Available timestamp units, coarsest first.
const (
	UnitYear TimestampUnit = iota
	UnitMonth
	UnitDay
	UnitMinute
	UnitSecond
)

// Timestamp is an Ion timestamp as the schema engine sees it: an instant
// plus the precision and offset it was written with.  Instant comparison is
// independent of offset, so 2000-01-01T00:00Z and 2000-01-01T01:00+01:00
// denote the same point in time.
type Timestamp struct {
	// The instant, with the written offset applied as a fixed zone.
	Time time.Time
	// Finest component present in the text form.
	Unit TimestampUnit
	// Number of fractional second digits written (0 for none).  Digits
	// beyond nanosecond resolution are counted but truncated in Time.
	FracDigits int
	// Whether the offset is known.  The text form -00:00 denotes an
	// unknown local offset.
	OffsetKnown bool
	// Offset from UTC in minutes, when known.
	OffsetMinutes int
}

// Compare orders two timestamps by instant, ignoring precision and offset.
func (t Timestamp) Compare(o Timestamp) int {
	a, b := t.Time.UTC(), o.Time.UTC()
	//
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// SameInstant reports whether two timestamps denote the same point in time.
func (t Timestamp) SameInstant(o Timestamp) bool {
	return t.Compare(o) == 0
}

func (t Timestamp) String() string {
	var sb strings.Builder
	//
	sb.WriteString(fmt.Sprintf("%04d", t.Time.Year()))
	//
	if t.Unit == UnitYear {
		sb.WriteString("T")
		return sb.String()
	}
	//
	sb.WriteString(fmt.Sprintf("-%02d", int(t.Time.Month())))
	//
	if t.Unit == UnitMonth {
		sb.WriteString("T")
		return sb.String()
	}
	//
	sb.WriteString(fmt.Sprintf("-%02d", t.Time.Day()))
	//
	if t.Unit == UnitDay {
		sb.WriteString("T")
		return sb.String()
	}
	//
	sb.WriteString(fmt.Sprintf("T%02d:%02d", t.Time.Hour(), t.Time.Minute()))
	//
	if t.Unit == UnitSecond {
		sb.WriteString(fmt.Sprintf(":%02d", t.Time.Second()))
		//
		if t.FracDigits > 0 {
			frac := fmt.Sprintf("%09d", t.Time.Nanosecond())
			if t.FracDigits < len(frac) {
				frac = frac[:t.FracDigits]
			} else {
				frac += strings.Repeat("0", t.FracDigits-len(frac))
			}
			//
			sb.WriteString("." + frac)
		}
	}
	//
	sb.WriteString(formatOffset(t.OffsetKnown, t.OffsetMinutes))
	//
	return sb.String()
}

// ParseTimestamp parses the Ion text form of a timestamp.  All precisions
// are supported, from year-only (2007T) down to arbitrary fractional
// seconds; -00:00 is recognised as the unknown offset.
func ParseTimestamp(text string) (Timestamp, error) {
	var (
		ts  Timestamp
		err error
	)
	// Date portion
	year, month, day := 1, 1, 1
	//
	rest := text
	//
	if year, rest, err = takeDigits(rest, 4); err != nil {
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	switch {
	case rest == "T":
		ts.Unit = UnitYear
		ts.Time = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		//
		return ts, nil
	case strings.HasPrefix(rest, "-"):
		if month, rest, err = takeDigits(rest[1:], 2); err != nil {
			return ts, fmt.Errorf("malformed timestamp %q", text)
		}
	default:
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	switch {
	case rest == "T":
		ts.Unit = UnitMonth
		ts.Time = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		//
		return ts, nil
	case strings.HasPrefix(rest, "-"):
		if day, rest, err = takeDigits(rest[1:], 2); err != nil {
			return ts, fmt.Errorf("malformed timestamp %q", text)
		}
	default:
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	if rest == "" || rest == "T" {
		ts.Unit = UnitDay
		ts.Time = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		//
		return ts, nil
	}
	// Time portion
	if !strings.HasPrefix(rest, "T") {
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	var hour, minute, sec, nanos, frac int
	//
	if hour, rest, err = takeDigits(rest[1:], 2); err != nil || !strings.HasPrefix(rest, ":") {
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	if minute, rest, err = takeDigits(rest[1:], 2); err != nil {
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	ts.Unit = UnitMinute
	//
	if strings.HasPrefix(rest, ":") {
		ts.Unit = UnitSecond
		//
		if sec, rest, err = takeDigits(rest[1:], 2); err != nil {
			return ts, fmt.Errorf("malformed timestamp %q", text)
		}
		//
		if strings.HasPrefix(rest, ".") {
			if nanos, frac, rest, err = takeFraction(rest[1:]); err != nil {
				return ts, fmt.Errorf("malformed timestamp %q", text)
			}
			//
			ts.FracDigits = frac
		}
	}
	// Offset portion
	known, offset, err := parseOffsetSuffix(rest)
	if err != nil {
		return ts, fmt.Errorf("malformed timestamp %q", text)
	}
	//
	ts.OffsetKnown, ts.OffsetMinutes = known, offset
	loc := time.UTC
	//
	if offset != 0 {
		loc = time.FixedZone("", offset*60)
	}
	//
	ts.Time = time.Date(year, time.Month(month), day, hour, minute, sec, nanos, loc)
	//
	return ts, nil
}

// MustParseTimestamp parses the Ion text form of a timestamp, panicking on
// malformed input.  Intended for tests and compiled-in constants.
func MustParseTimestamp(text string) Timestamp {
	ts, err := ParseTimestamp(text)
	if err != nil {
		panic(err)
	}

	return ts
}

func formatOffset(known bool, minutes int) string {
	if !known {
		return "-00:00"
	}
	//
	if minutes == 0 {
		return "Z"
	}
	//
	sign := "+"
	//
	if minutes < 0 {
		sign, minutes = "-", -minutes
	}
	//
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// parseOffsetSuffix parses the trailing offset of a timestamp, returning
// whether the offset is known along with its value in minutes.
func parseOffsetSuffix(s string) (bool, int, error) {
	if s == "Z" || s == "z" {
		return true, 0, nil
	}
	//
	if s == "-00:00" {
		return false, 0, nil
	}
	//
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return false, 0, fmt.Errorf("malformed timestamp offset %q", s)
	}
	//
	hours, err1 := strconv.Atoi(s[1:3])
	minutes, err2 := strconv.Atoi(s[4:6])
	//
	if err1 != nil || err2 != nil || hours > 23 || minutes > 59 {
		return false, 0, fmt.Errorf("malformed timestamp offset %q", s)
	}
	//
	offset := hours*60 + minutes
	//
	if s[0] == '-' {
		offset = -offset
	}
	//
	return true, offset, nil
}

func takeDigits(s string, n int) (int, string, error) {
	if len(s) < n {
		return 0, s, fmt.Errorf("expected %d digits", n)
	}
	//
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, s, err
	}
	//
	return v, s[n:], nil
}

// takeFraction consumes fractional second digits, returning nanoseconds
// (truncated at 9 digits), the digit count and the remaining input.
func takeFraction(s string) (int, int, string, error) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	//
	if n == 0 {
		return 0, 0, s, fmt.Errorf("expected fractional digits")
	}
	//
	digits := s[:n]
	if len(digits) > 9 {
		digits = digits[:9]
	}
	//
	nanos, err := strconv.Atoi(digits)
	if err != nil {
		return 0, 0, s, err
	}
	// Scale to nanoseconds
	for i := len(digits); i < 9; i++ {
		nanos *= 10
	}
	//
	return nanos, n, s[n:], nil
}
