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

// floatMantissaDigits is the number of decimal digits used when promoting a
// binary64 float to a Number.  Using the full mantissa width (rather than
// the shortest round-trip form) means 1.1e0 promotes to the exact binary
// value it denotes, which is distinct from the decimal 1.1.
const floatMantissaDigits = 53

// Number unifies Ion ints, floats and decimals under a single
// arbitrary-precision decimal ordering.  A number is coefficient * 10^exponent.
type Number struct {
	coefficient *big.Int
	exponent    int
}

// NumberFromInt promotes an arbitrary-precision integer.
func NumberFromInt(value *big.Int) Number {
	return normaliseNumber(new(big.Int).Set(value), 0)
}

// NumberFromDecimal promotes a decimal.  Negative zero promotes to zero.
func NumberFromDecimal(value *ion.Decimal) Number {
	coefficient, exponent, _ := element.DecimalParts(value)
	//
	return normaliseNumber(coefficient, exponent)
}

// NumberFromFloat promotes a binary64 float using mantissa-digit formatting.
// NaN and infinities have no decimal expansion and are rejected.
func NumberFromFloat(value float64) (Number, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Number{}, fmt.Errorf("cannot convert %v to a number", value)
	}
	//
	text := strconv.FormatFloat(value, 'e', floatMantissaDigits, 64)
	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	// split mantissa and exponent
	i := strings.IndexByte(text, 'e')
	exponent, _ := strconv.Atoi(text[i+1:])
	mantissa := text[:i]
	// fold fractional digits into the exponent
	if j := strings.IndexByte(mantissa, '.'); j >= 0 {
		exponent -= len(mantissa) - j - 1
		mantissa = mantissa[:j] + mantissa[j+1:]
	}
	//
	coefficient, _ := new(big.Int).SetString(mantissa, 10)
	//
	if negative {
		coefficient.Neg(coefficient)
	}
	//
	return normaliseNumber(coefficient, exponent), nil
}

// NumberFromElement promotes any numeric element.
func NumberFromElement(el element.Element) (Number, error) {
	switch el.Type() {
	case ion.IntType:
		return NumberFromInt(el.Int()), nil
	case ion.FloatType:
		return NumberFromFloat(el.Float())
	case ion.DecimalType:
		return NumberFromDecimal(el.Decimal()), nil
	default:
		return Number{}, fmt.Errorf("cannot convert %v to a number", el.Type())
	}
}

// normaliseNumber strips trailing zero digits from the coefficient so that
// equal values share a single representation.
func normaliseNumber(coefficient *big.Int, exponent int) Number {
	var (
		ten = big.NewInt(10)
		rem big.Int
	)
	//
	for coefficient.Sign() != 0 {
		var quo big.Int
		//
		quo.QuoRem(coefficient, ten, &rem)
		//
		if rem.Sign() != 0 {
			break
		}
		//
		coefficient.Set(&quo)
		exponent++
	}
	//
	if coefficient.Sign() == 0 {
		exponent = 0
	}
	//
	return Number{coefficient, exponent}
}

// Cmp orders two numbers by mathematical value.
func (n Number) Cmp(o Number) int {
	a, b := n.coefficient, o.coefficient
	// fast path on sign
	if a.Sign() != b.Sign() {
		if a.Sign() < b.Sign() {
			return -1
		}
		//
		return 1
	}
	// align exponents
	if n.exponent > o.exponent {
		a = scaleUp(a, n.exponent-o.exponent)
	} else if o.exponent > n.exponent {
		b = scaleUp(b, o.exponent-n.exponent)
	}
	//
	return a.Cmp(b)
}

func (n Number) String() string {
	if n.exponent == 0 {
		return n.coefficient.String()
	}

	return fmt.Sprintf("%sd%d", n.coefficient.String(), n.exponent)
}

func scaleUp(v *big.Int, digits int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	//
	return scale.Mul(scale, v)
}
