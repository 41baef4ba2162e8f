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
	"bytes"
	"math"
	"math/big"
	"strings"

	"github.com/amzn/ion-go/ion"
)

// Equal implements Ion datum equivalence.  Annotations participate in
// equality; structs compare as unordered multisets of fields; floats compare
// bit-wise (all NaNs equal, positive and negative zero distinct); decimals
// compare by coefficient and exponent, so 1.0 and 1.00 are distinct.
func Equal(a, b Element) bool {
	if !stringsEqual(a.annotations, b.annotations) {
		return false
	}

	return equalValue(a, b)
}

// EqualIgnoringAnnotations implements Ion datum equivalence, disregarding
// the top-level annotations of both values.
func EqualIgnoringAnnotations(a, b Element) bool {
	return equalValue(a, b)
}

func equalValue(a, b Element) bool {
	if a.ionType != b.ionType || a.null != b.null {
		return false
	}
	//
	if a.null {
		return true
	}
	//
	switch a.ionType {
	case ion.BoolType:
		return a.boolVal == b.boolVal
	case ion.IntType:
		return a.intVal.Cmp(b.intVal) == 0
	case ion.FloatType:
		return floatEqual(a.floatVal, b.floatVal)
	case ion.DecimalType:
		return decimalEqual(a.decVal, b.decVal)
	case ion.TimestampType:
		return timestampEqual(*a.tsVal, *b.tsVal)
	case ion.SymbolType, ion.StringType:
		return a.textVal == b.textVal
	case ion.ClobType, ion.BlobType:
		return bytes.Equal(a.bytesVal, b.bytesVal)
	case ion.ListType, ion.SexpType:
		return sequenceEqual(a.children, b.children)
	case ion.StructType:
		return structEqual(a.fields, b.fields)
	}
	//
	return false
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	//
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	//
	return true
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	return math.Float64bits(a) == math.Float64bits(b)
}

func decimalEqual(a, b *ion.Decimal) bool {
	ca, ea, na := DecimalParts(a)
	cb, eb, nb := DecimalParts(b)
	//
	return ca.Cmp(cb) == 0 && ea == eb && na == nb
}

func timestampEqual(a, b Timestamp) bool {
	return a.Unit == b.Unit &&
		a.FracDigits == b.FracDigits &&
		a.OffsetKnown == b.OffsetKnown &&
		a.OffsetMinutes == b.OffsetMinutes &&
		a.SameInstant(b)
}

func sequenceEqual(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	//
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	//
	return true
}

// structEqual compares two field lists as unordered multisets.
func structEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	//
	used := make([]bool, len(b))
	//
	for _, fa := range a {
		matched := false
		//
		for j, fb := range b {
			if !used[j] && fa.Name == fb.Name && Equal(fa.Value, fb.Value) {
				used[j], matched = true, true
				break
			}
		}
		//
		if !matched {
			return false
		}
	}
	//
	return true
}

// DecimalParts decomposes a decimal into signed coefficient, exponent and
// sign by parsing its text form.  The result is the exact written datum, so
// 1.0 decomposes as (10, -1, false) whilst 1.00 decomposes as (100, -2,
// false); negative zero is reported with a zero coefficient and a true sign.
func DecimalParts(d *ion.Decimal) (*big.Int, int, bool) {
	text := d.String()
	negative := false
	//
	if strings.HasPrefix(text, "-") {
		negative, text = true, text[1:]
	}
	// Split off the exponent, if any
	exponent := 0
	//
	if i := strings.IndexAny(text, "dD"); i >= 0 {
		exponent = atoiOrZero(text[i+1:])
		text = text[:i]
	}
	// Fold fractional digits into the exponent
	if i := strings.Index(text, "."); i >= 0 {
		exponent -= len(text) - i - 1
		text = text[:i] + text[i+1:]
	}
	//
	coefficient, ok := new(big.Int).SetString(text, 10)
	if !ok {
		coefficient = big.NewInt(0)
	}
	//
	if negative {
		coefficient.Neg(coefficient)
	}
	//
	return coefficient, exponent, negative
}

// DecimalPrecision returns the number of significant digits of a decimal.
func DecimalPrecision(d *ion.Decimal) int {
	coefficient, _, _ := DecimalParts(d)
	//
	return len(new(big.Int).Abs(coefficient).String())
}

func atoiOrZero(s string) int {
	sign := 1
	//
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		sign, s = -1, s[1:]
	}
	//
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		//
		v = v*10 + int(c-'0')
	}
	//
	return sign * v
}
