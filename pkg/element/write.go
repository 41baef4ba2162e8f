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
	"strings"

	"github.com/amzn/ion-go/ion"
)

// WriteTo emits this element (with its annotations) on the given writer.
func (e Element) WriteTo(w ion.Writer) error {
	if len(e.annotations) > 0 {
		tokens := make([]ion.SymbolToken, len(e.annotations))
		for i, a := range e.annotations {
			tokens[i] = ion.NewSymbolTokenFromString(a)
		}
		//
		if err := w.Annotations(tokens...); err != nil {
			return err
		}
	}
	//
	if e.null {
		if e.ionType == ion.NullType || e.ionType == ion.NoType {
			return w.WriteNull()
		}
		//
		return w.WriteNullType(e.ionType)
	}
	//
	switch e.ionType {
	case ion.BoolType:
		return w.WriteBool(e.boolVal)
	case ion.IntType:
		if e.intVal.IsInt64() {
			return w.WriteInt(e.intVal.Int64())
		}
		//
		return w.WriteBigInt(e.intVal)
	case ion.FloatType:
		return w.WriteFloat(e.floatVal)
	case ion.DecimalType:
		return w.WriteDecimal(e.decVal)
	case ion.TimestampType:
		return w.WriteTimestamp(e.tsVal.ion())
	case ion.SymbolType:
		return w.WriteSymbolFromString(e.textVal)
	case ion.StringType:
		return w.WriteString(e.textVal)
	case ion.ClobType:
		return w.WriteClob(e.bytesVal)
	case ion.BlobType:
		return w.WriteBlob(e.bytesVal)
	case ion.ListType:
		return e.writeSequence(w, w.BeginList, w.EndList)
	case ion.SexpType:
		return e.writeSequence(w, w.BeginSexp, w.EndSexp)
	case ion.StructType:
		if err := w.BeginStruct(); err != nil {
			return err
		}
		//
		for _, f := range e.fields {
			if err := w.FieldName(ion.NewSymbolTokenFromString(f.Name)); err != nil {
				return err
			}
			//
			if err := f.Value.WriteTo(w); err != nil {
				return err
			}
		}
		//
		return w.EndStruct()
	}
	//
	return nil
}

func (e Element) writeSequence(w ion.Writer, begin, end func() error) error {
	if err := begin(); err != nil {
		return err
	}
	//
	for _, child := range e.children {
		if err := child.WriteTo(w); err != nil {
			return err
		}
	}
	//
	return end()
}

// String returns the Ion text form of this element.
func (e Element) String() string {
	var sb strings.Builder
	//
	w := ion.NewTextWriter(&sb)
	//
	if err := e.WriteTo(w); err != nil {
		return "<invalid ion>"
	}
	//
	if err := w.Finish(); err != nil {
		return "<invalid ion>"
	}
	//
	return sb.String()
}

// ion converts this timestamp back into its ion-go representation for
// serialisation.
func (t Timestamp) ion() ion.Timestamp {
	var precision ion.TimestampPrecision
	//
	switch t.Unit {
	case UnitYear:
		precision = ion.TimestampPrecisionYear
	case UnitMonth:
		precision = ion.TimestampPrecisionMonth
	case UnitDay:
		precision = ion.TimestampPrecisionDay
	case UnitMinute:
		precision = ion.TimestampPrecisionMinute
	default:
		precision = ion.TimestampPrecisionSecond
	}
	//
	kind := ion.TimezoneUnspecified
	//
	if t.OffsetKnown {
		if t.OffsetMinutes == 0 {
			kind = ion.TimezoneUTC
		} else {
			kind = ion.TimezoneLocal
		}
	}
	//
	if t.FracDigits > 0 {
		digits := t.FracDigits
		if digits > 9 {
			digits = 9
		}
		//
		return ion.NewTimestampWithFractionalSeconds(t.Time, ion.TimestampPrecisionNanosecond, kind, uint8(digits))
	}
	//
	return ion.NewTimestamp(t.Time, precision, kind)
}
