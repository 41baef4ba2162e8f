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
	"math/big"
	"testing"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberOf(t *testing.T, text string) Number {
	t.Helper()
	//
	n, err := NumberFromElement(element.MustReadOne(text))
	require.NoError(t, err)
	//
	return n
}

func TestNumber_CrossTypeOrdering(t *testing.T) {
	tests := []struct {
		a, b string
		cmp  int
	}{
		{"1", "1", 0},
		{"1", "1.0", 0},
		{"1", "1e0", 0},
		{"0.5", "5e-1", 0},
		{"1", "2", -1},
		{"2.5", "2", 1},
		{"-3", "2.5e0", -1},
		{"10", "1d1", 0},
	}
	//
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.cmp, numberOf(t, tt.a).Cmp(numberOf(t, tt.b)))
		})
	}
}

func TestNumber_FloatMantissaPromotion(t *testing.T) {
	// the decimal 1.1 and the float 1.1e0 denote different numbers: the
	// float is the nearest binary64 value, which is slightly larger
	dec := numberOf(t, "1.1")
	flt := numberOf(t, "1.1e0")
	//
	assert.NotEqual(t, 0, dec.Cmp(flt))
	assert.Equal(t, 1, flt.Cmp(dec))
	// exactly representable floats promote exactly
	assert.Equal(t, 0, numberOf(t, "0.5").Cmp(numberOf(t, "5e-1")))
	assert.Equal(t, 0, numberOf(t, "-2").Cmp(numberOf(t, "-2e0")))
}

func TestNumber_NonFiniteRejected(t *testing.T) {
	for _, text := range []string{"nan", "+inf", "-inf"} {
		_, err := NumberFromElement(element.MustReadOne(text))
		assert.Error(t, err, text)
	}
}

func TestNumber_BigInts(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	//
	a := NumberFromInt(huge)
	b := NumberFromInt(new(big.Int).Add(huge, big.NewInt(1)))
	//
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 0, a.Cmp(NumberFromInt(huge)))
}

func TestNumber_NegativeZeroDecimal(t *testing.T) {
	assert.Equal(t, 0, numberOf(t, "-0.0").Cmp(numberOf(t, "0")))
}
