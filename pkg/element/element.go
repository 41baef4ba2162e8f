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
	"math/big"

	"github.com/amzn/ion-go/ion"
)

// Element is an immutable, fully materialised Ion value.  It is the value
// model everything else in this module operates over: schema documents are
// sequences of elements, and validation consumes one element at a time.
// Scalar payloads are stored in the field matching the element's type; at
// most one of them is meaningful for any given element.
type Element struct {
	ionType     ion.Type
	null        bool
	annotations []string
	boolVal     bool
	intVal      *big.Int
	floatVal    float64
	decVal      *ion.Decimal
	tsVal       *Timestamp
	textVal     string
	bytesVal    []byte
	children    []Element
	fields      []Field
}

// Field is a single (name, value) entry of a struct.  Structs preserve field
// order and permit duplicate names.
type Field struct {
	Name  string
	Value Element
}

// NewNull constructs a (possibly typed) null element.
func NewNull(t ion.Type) Element {
	return Element{ionType: t, null: true}
}

// NewBool constructs a bool element.
func NewBool(b bool) Element {
	return Element{ionType: ion.BoolType, boolVal: b}
}

// NewInt constructs an int element from an int64.
func NewInt(v int64) Element {
	return Element{ionType: ion.IntType, intVal: big.NewInt(v)}
}

// NewBigInt constructs an int element from an arbitrary-precision integer.
func NewBigInt(v *big.Int) Element {
	return Element{ionType: ion.IntType, intVal: v}
}

// NewFloat constructs a float element.
func NewFloat(v float64) Element {
	return Element{ionType: ion.FloatType, floatVal: v}
}

// NewDecimal constructs a decimal element.
func NewDecimal(v *ion.Decimal) Element {
	return Element{ionType: ion.DecimalType, decVal: v}
}

// NewTimestamp constructs a timestamp element.
func NewTimestamp(ts Timestamp) Element {
	return Element{ionType: ion.TimestampType, tsVal: &ts}
}

// NewString constructs a string element.
func NewString(s string) Element {
	return Element{ionType: ion.StringType, textVal: s}
}

// NewSymbol constructs a symbol element.
func NewSymbol(s string) Element {
	return Element{ionType: ion.SymbolType, textVal: s}
}

// NewClob constructs a clob element.
func NewClob(b []byte) Element {
	return Element{ionType: ion.ClobType, bytesVal: b}
}

// NewBlob constructs a blob element.
func NewBlob(b []byte) Element {
	return Element{ionType: ion.BlobType, bytesVal: b}
}

// NewList constructs a list element.
func NewList(children ...Element) Element {
	return Element{ionType: ion.ListType, children: children}
}

// NewSexp constructs an s-expression element.
func NewSexp(children ...Element) Element {
	return Element{ionType: ion.SexpType, children: children}
}

// NewStruct constructs a struct element.
func NewStruct(fields ...Field) Element {
	return Element{ionType: ion.StructType, fields: fields}
}

// WithAnnotations returns a copy of this element carrying the given
// annotations (replacing any existing ones).
func (e Element) WithAnnotations(annotations ...string) Element {
	e.annotations = annotations
	return e
}

// Type returns the Ion type of this element.
func (e Element) Type() ion.Type {
	return e.ionType
}

// IsNull reports whether this element is a null of any type.
func (e Element) IsNull() bool {
	return e.null
}

// Annotations returns the annotation symbols of this element, in order.
func (e Element) Annotations() []string {
	return e.annotations
}

// HasAnnotation reports whether the given annotation is present.
func (e Element) HasAnnotation(annotation string) bool {
	for _, a := range e.annotations {
		if a == annotation {
			return true
		}
	}

	return false
}

// Bool returns the boolean payload.
func (e Element) Bool() bool {
	return e.boolVal
}

// Int returns the integer payload.
func (e Element) Int() *big.Int {
	return e.intVal
}

// Float returns the float payload.
func (e Element) Float() float64 {
	return e.floatVal
}

// Decimal returns the decimal payload.
func (e Element) Decimal() *ion.Decimal {
	return e.decVal
}

// Timestamp returns the timestamp payload.
func (e Element) Timestamp() Timestamp {
	return *e.tsVal
}

// Text returns the text payload of a string or symbol element.
func (e Element) Text() string {
	return e.textVal
}

// Bytes returns the payload of a clob or blob element.
func (e Element) Bytes() []byte {
	return e.bytesVal
}

// Elements returns the children of a list or s-expression element.
func (e Element) Elements() []Element {
	return e.children
}

// Fields returns the fields of a struct element, in document order.
func (e Element) Fields() []Field {
	return e.fields
}

// Field returns the value of the first field with the given name, if any.
func (e Element) Field(name string) (Element, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	//
	return Element{}, false
}

// Len returns the number of children (list, sexp) or fields (struct).
func (e Element) Len() int {
	if e.ionType == ion.StructType {
		return len(e.fields)
	}

	return len(e.children)
}

// IsContainer reports whether this element is a list, sexp or struct.
func (e Element) IsContainer() bool {
	switch e.ionType {
	case ion.ListType, ion.SexpType, ion.StructType:
		return true
	default:
		return false
	}
}

// IsSequence reports whether this element is a list or sexp.
func (e Element) IsSequence() bool {
	return e.ionType == ion.ListType || e.ionType == ion.SexpType
}

// IsNumeric reports whether this element is an int, float or decimal.
func (e Element) IsNumeric() bool {
	switch e.ionType {
	case ion.IntType, ion.FloatType, ion.DecimalType:
		return true
	default:
		return false
	}
}

// IsText reports whether this element is a string or symbol.
func (e Element) IsText() bool {
	return e.ionType == ion.StringType || e.ionType == ion.SymbolType
}

// IsLob reports whether this element is a clob or blob.
func (e Element) IsLob() bool {
	return e.ionType == ion.ClobType || e.ionType == ion.BlobType
}
