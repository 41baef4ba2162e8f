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
	"os"

	"github.com/amzn/ion-go/ion"
	"github.com/pkg/errors"
)

// ReadAll materialises every top-level value the given reader yields.
func ReadAll(r ion.Reader) ([]Element, error) {
	var elements []Element
	//
	for r.Next() {
		el, err := readCurrent(r)
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, el)
	}
	//
	if r.Err() != nil {
		return nil, errors.Wrap(r.Err(), "reading ion stream")
	}
	//
	return elements, nil
}

// ReadString materialises every top-level value of an Ion text document.
func ReadString(doc string) ([]Element, error) {
	return ReadAll(ion.NewReaderString(doc))
}

// ReadBytes materialises every top-level value of an Ion text or binary
// document.
func ReadBytes(doc []byte) ([]Element, error) {
	return ReadAll(ion.NewReaderBytes(doc))
}

// ReadOne materialises exactly one value from an Ion text document.
func ReadOne(doc string) (Element, error) {
	elements, err := ReadString(doc)
	//
	switch {
	case err != nil:
		return Element{}, err
	case len(elements) != 1:
		return Element{}, errors.Errorf("expected exactly one ion value, found %d", len(elements))
	default:
		return elements[0], nil
	}
}

// MustReadOne materialises exactly one value from an Ion text document,
// panicking on failure.  Intended for tests and compiled-in constants.
func MustReadOne(doc string) Element {
	el, err := ReadOne(doc)
	if err != nil {
		panic(err)
	}

	return el
}

// ReadFile materialises every top-level value of the given Ion file.
func ReadFile(path string) ([]Element, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	//
	return ReadBytes(contents)
}

// symbolTokensToStrings converts symbol tokens into their text form.
func symbolTokensToStrings(tokens []ion.SymbolToken) []string {
	texts := make([]string, len(tokens))
	//
	for i, t := range tokens {
		if t.Text != nil {
			texts[i] = *t.Text
		}
	}
	//
	return texts
}

// readCurrent materialises the value the reader is currently positioned on.
func readCurrent(r ion.Reader) (Element, error) {
	var el Element
	//
	annotationTokens, err := r.Annotations()
	if err != nil {
		return el, err
	}
	//
	annotations := symbolTokensToStrings(annotationTokens)
	//
	if r.IsNull() {
		el = NewNull(r.Type())
		return el.WithAnnotations(annotations...), nil
	}
	//
	switch r.Type() {
	case ion.BoolType:
		v, err := r.BoolValue()
		if err != nil {
			return el, err
		}
		//
		el = NewBool(*v)
	case ion.IntType:
		v, err := r.BigIntValue()
		if err != nil {
			return el, err
		}
		//
		el = NewBigInt(v)
	case ion.FloatType:
		v, err := r.FloatValue()
		if err != nil {
			return el, err
		}
		//
		el = NewFloat(*v)
	case ion.DecimalType:
		v, err := r.DecimalValue()
		if err != nil {
			return el, err
		}
		//
		el = NewDecimal(v)
	case ion.TimestampType:
		v, err := r.TimestampValue()
		if err != nil {
			return el, err
		}
		// Reparse the canonical text form, which carries the precision
		// and offset the value was written with.
		ts, err := ParseTimestamp(v.String())
		if err != nil {
			return el, err
		}
		//
		el = NewTimestamp(ts)
	case ion.SymbolType:
		v, err := r.SymbolValue()
		if err != nil {
			return el, err
		}
		//
		var text string
		if v.Text != nil {
			text = *v.Text
		}
		//
		el = NewSymbol(text)
	case ion.StringType:
		v, err := r.StringValue()
		if err != nil {
			return el, err
		}
		//
		el = NewString(*v)
	case ion.ClobType:
		v, err := r.ByteValue()
		if err != nil {
			return el, err
		}
		//
		el = NewClob(v)
	case ion.BlobType:
		v, err := r.ByteValue()
		if err != nil {
			return el, err
		}
		//
		el = NewBlob(v)
	case ion.ListType, ion.SexpType:
		isList := r.Type() == ion.ListType
		//
		children, err := readSequence(r)
		if err != nil {
			return el, err
		}
		//
		if isList {
			el = NewList(children...)
		} else {
			el = NewSexp(children...)
		}
	case ion.StructType:
		fields, err := readStruct(r)
		if err != nil {
			return el, err
		}
		//
		el = NewStruct(fields...)
	default:
		return el, errors.Errorf("unsupported ion type %v", r.Type())
	}
	//
	return el.WithAnnotations(annotations...), nil
}

func readSequence(r ion.Reader) ([]Element, error) {
	if err := r.StepIn(); err != nil {
		return nil, err
	}
	//
	var children []Element
	//
	for r.Next() {
		child, err := readCurrent(r)
		if err != nil {
			return nil, err
		}
		//
		children = append(children, child)
	}
	//
	if r.Err() != nil {
		return nil, r.Err()
	}
	//
	return children, r.StepOut()
}

func readStruct(r ion.Reader) ([]Field, error) {
	if err := r.StepIn(); err != nil {
		return nil, err
	}
	//
	var fields []Field
	//
	for r.Next() {
		nameToken, err := r.FieldName()
		if err != nil {
			return nil, err
		}
		//
		var name string
		if nameToken != nil && nameToken.Text != nil {
			name = *nameToken.Text
		}
		//
		value, err := readCurrent(r)
		if err != nil {
			return nil, err
		}
		//
		fields = append(fields, Field{Name: name, Value: value})
	}
	//
	if r.Err() != nil {
		return nil, r.Err()
	}
	//
	return fields, r.StepOut()
}
