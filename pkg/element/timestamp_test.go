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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Units(t *testing.T) {
	tests := []struct {
		text string
		unit TimestampUnit
		frac int
	}{
		{"2024T", UnitYear, 0},
		{"2024-05T", UnitMonth, 0},
		{"2024-05-03", UnitDay, 0},
		{"2024-05-03T", UnitDay, 0},
		{"2024-05-03T00:00Z", UnitMinute, 0},
		{"2024-05-03T10:15+01:00", UnitMinute, 0},
		{"2024-05-03T10:15:30Z", UnitSecond, 0},
		{"2024-05-03T10:15:30.123Z", UnitSecond, 3},
		{"2024-05-03T10:15:30.123456789Z", UnitSecond, 9},
		{"2024-05-03T10:15:30.1234567891Z", UnitSecond, 10},
	}
	//
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, ts.Unit)
			assert.Equal(t, tt.frac, ts.FracDigits)
		})
	}
}

func TestParseTimestamp_Offsets(t *testing.T) {
	ts := MustParseTimestamp("2024-05-03T10:15Z")
	assert.True(t, ts.OffsetKnown)
	assert.Equal(t, 0, ts.OffsetMinutes)
	//
	ts = MustParseTimestamp("2024-05-03T10:15+05:30")
	assert.True(t, ts.OffsetKnown)
	assert.Equal(t, 330, ts.OffsetMinutes)
	//
	ts = MustParseTimestamp("2024-05-03T10:15-08:00")
	assert.True(t, ts.OffsetKnown)
	assert.Equal(t, -480, ts.OffsetMinutes)
	//
	ts = MustParseTimestamp("2024-05-03T10:15-00:00")
	assert.False(t, ts.OffsetKnown)
}

func TestParseTimestamp_Malformed(t *testing.T) {
	for _, text := range []string{"", "2024", "2024-05", "2024-05-03T10", "2024-05-03T10:15", "2024-05-03T10:15+25:00"} {
		_, err := ParseTimestamp(text)
		assert.Error(t, err, text)
	}
}

func TestTimestamp_InstantComparison(t *testing.T) {
	// the same instant written with different offsets
	a := MustParseTimestamp("2000-01-01T00:00:00Z")
	b := MustParseTimestamp("2000-01-01T01:00:00+01:00")
	assert.Equal(t, 0, a.Compare(b))
	assert.True(t, a.SameInstant(b))
	//
	c := MustParseTimestamp("2000-01-01T00:00:01Z")
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}

func TestTimestamp_RoundTrip(t *testing.T) {
	for _, text := range []string{"2024T", "2024-05T", "2024-05-03T", "2024-05-03T10:15Z",
		"2024-05-03T10:15:30-08:00", "2024-05-03T10:15:30.500Z", "2024-05-03T10:15-00:00"} {
		assert.Equal(t, text, MustParseTimestamp(text).String())
	}
}
