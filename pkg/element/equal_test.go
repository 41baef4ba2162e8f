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
)

func TestEqual_Scalars(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"1", "1", true},
		{"1", "2", false},
		{"1", "1.0", false},
		{"1.0", "1.0", true},
		{"1.0", "1.00", false},
		{"1e0", "1e0", true},
		{"nan", "nan", true},
		{"0e0", "-0e0", false},
		{"\"a\"", "\"a\"", true},
		{"\"a\"", "'a'", false},
		{"null", "null", true},
		{"null.int", "null.int", true},
		{"null.int", "null.string", false},
		{"2024T", "2024T", true},
		{"2024T", "2024-01T", false},
	}
	//
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustReadOne(tt.a), MustReadOne(tt.b)
			assert.Equal(t, tt.equal, Equal(a, b))
		})
	}
}

func TestEqual_Annotations(t *testing.T) {
	plain := MustReadOne("5")
	annotated := MustReadOne("a::5")
	//
	assert.False(t, Equal(plain, annotated))
	assert.True(t, EqualIgnoringAnnotations(plain, annotated))
}

func TestEqual_Structs(t *testing.T) {
	// field order is irrelevant
	a := MustReadOne("{x: 1, y: 2}")
	b := MustReadOne("{y: 2, x: 1}")
	assert.True(t, Equal(a, b))
	// duplicates compare as multisets
	c := MustReadOne("{x: 1, x: 1}")
	d := MustReadOne("{x: 1}")
	assert.False(t, Equal(c, d))
	//
	e := MustReadOne("{x: 1, x: 2}")
	f := MustReadOne("{x: 2, x: 1}")
	assert.True(t, Equal(e, f))
}

func TestEqual_Sequences(t *testing.T) {
	assert.True(t, Equal(MustReadOne("[1, 2]"), MustReadOne("[1, 2]")))
	assert.False(t, Equal(MustReadOne("[1, 2]"), MustReadOne("[2, 1]")))
	assert.False(t, Equal(MustReadOne("[1, 2]"), MustReadOne("(1 2)")))
}

func TestDecimalParts(t *testing.T) {
	coefficient, exponent, negative := DecimalParts(MustReadOne("1.20").Decimal())
	assert.Equal(t, "120", coefficient.String())
	assert.Equal(t, -2, exponent)
	assert.False(t, negative)
	//
	coefficient, exponent, negative = DecimalParts(MustReadOne("-0.5").Decimal())
	assert.Equal(t, "-5", coefficient.String())
	assert.Equal(t, -1, exponent)
	assert.True(t, negative)
}

func TestDecimalPrecision(t *testing.T) {
	assert.Equal(t, 3, DecimalPrecision(MustReadOne("1.20").Decimal()))
	assert.Equal(t, 1, DecimalPrecision(MustReadOne("5d0").Decimal()))
	assert.Equal(t, 1, DecimalPrecision(MustReadOne("0.").Decimal()))
}
