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
	"testing"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampPrecision_Order(t *testing.T) {
	ordered := []TimestampPrecision{
		PrecisionYear, PrecisionMonth, PrecisionDay, PrecisionMinute,
		PrecisionSecond, PrecisionMillisecond, PrecisionMicrosecond, PrecisionNanosecond,
	}
	//
	for i := 1; i < len(ordered); i++ {
		assert.Equal(t, -1, ordered[i-1].Cmp(ordered[i]))
		assert.Equal(t, 1, ordered[i].Cmp(ordered[i-1]))
	}
	// scale 4 fractional seconds sit between millisecond and microsecond
	other := PrecisionOtherFractionalSeconds(4)
	assert.Equal(t, -1, PrecisionMillisecond.Cmp(other))
	assert.Equal(t, -1, other.Cmp(PrecisionMicrosecond))
}

func TestTimestampPrecision_HourAlias(t *testing.T) {
	hour, err := ParseTimestampPrecision("hour")
	require.NoError(t, err)
	//
	minute, err := ParseTimestampPrecision("minute")
	require.NoError(t, err)
	//
	assert.Equal(t, 0, hour.Cmp(minute))
}

func TestTimestampPrecision_FromTimestamp(t *testing.T) {
	tests := []struct {
		text     string
		expected TimestampPrecision
	}{
		{"2024T", PrecisionYear},
		{"2024-05T", PrecisionMonth},
		{"2024-05-03T", PrecisionDay},
		{"2024-05-03T00:00Z", PrecisionMinute},
		{"2024-05-03T00:00:00Z", PrecisionSecond},
		{"2024-05-03T00:00:00.000Z", PrecisionMillisecond},
		{"2024-05-03T00:00:00.000000Z", PrecisionMicrosecond},
		{"2024-05-03T00:00:00.000000000Z", PrecisionNanosecond},
		{"2024-05-03T00:00:00.0000Z", PrecisionOtherFractionalSeconds(4)},
	}
	//
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ts := element.MustParseTimestamp(tt.text)
			assert.Equal(t, 0, TimestampPrecisionOf(ts).Cmp(tt.expected))
		})
	}
}

func TestTimestampOffset_Parse(t *testing.T) {
	offset, err := ParseTimestampOffset("+07:00")
	require.NoError(t, err)
	//
	minutes, known := offset.Known()
	assert.True(t, known)
	assert.Equal(t, 420, minutes)
	//
	offset, err = ParseTimestampOffset("-00:00")
	require.NoError(t, err)
	//
	_, known = offset.Known()
	assert.False(t, known)
	//
	for _, text := range []string{"07:00", "+7:00", "+24:00", "+00:60", "bogus", "+0700"} {
		_, err := ParseTimestampOffset(text)
		assert.Error(t, err, text)
	}
}

func TestTimestampOffset_String(t *testing.T) {
	assert.Equal(t, "+07:00", KnownOffset(420).String())
	assert.Equal(t, "-08:30", KnownOffset(-510).String())
	assert.Equal(t, "+00:00", KnownOffset(0).String())
	assert.Equal(t, "-00:00", UnknownOffset.String())
}
