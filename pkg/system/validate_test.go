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
package system

import (
	"testing"

	"github.com/consensys/go-ionschema/pkg/authority"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustLoad loads a single-document schema from its text.
func mustLoad(t *testing.T, doc string) *Schema {
	t.Helper()
	//
	sys := NewSchemaSystem(authority.NewMapDocumentAuthority(map[string]string{"test.isl": doc}))
	//
	sch, err := sys.LoadSchema("test.isl")
	require.NoError(t, err)
	//
	return sch
}

func checkValid(t *testing.T, sch *Schema, typeName string, value string) {
	t.Helper()
	//
	violation, err := sch.Validate(element.MustReadOne(value), typeName)
	require.NoError(t, err)
	assert.Nil(t, violation, "expected %s to be valid against %s", value, typeName)
}

func checkInvalid(t *testing.T, sch *Schema, typeName string, value string, code schema.ViolationCode) {
	t.Helper()
	//
	violation, err := sch.Validate(element.MustReadOne(value), typeName)
	require.NoError(t, err)
	require.NotNil(t, violation, "expected %s to be invalid against %s", value, typeName)
	assert.True(t, treeHasCode(violation, code),
		"expected violation code %s for %s, got:\n%s", code, value, violation)
}

// treeHasCode searches the whole violation tree for a code.
func treeHasCode(v *schema.Violation, code schema.ViolationCode) bool {
	if v.Code == code {
		return true
	}
	//
	for _, child := range v.Children {
		if treeHasCode(child, code) {
			return true
		}
	}
	//
	return false
}

func TestValidate_CoreTypes(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: an_int, type: int}
		type::{name: a_nullable_int, type: $int}
		type::{name: some_text, type: text}
		type::{name: anything, type: any}
		type::{name: nothing_at_all, type: nothing}
	`)
	//
	checkValid(t, sch, "an_int", "5")
	checkInvalid(t, sch, "an_int", "5.0", schema.TypeMismatched)
	checkInvalid(t, sch, "an_int", "null", schema.InvalidNull)
	checkInvalid(t, sch, "an_int", "null.int", schema.InvalidNull)
	//
	checkValid(t, sch, "a_nullable_int", "5")
	checkValid(t, sch, "a_nullable_int", "null")
	checkValid(t, sch, "a_nullable_int", "null.int")
	checkInvalid(t, sch, "a_nullable_int", "null.string", schema.InvalidNull)
	//
	checkValid(t, sch, "some_text", "\"hi\"")
	checkValid(t, sch, "some_text", "hi")
	checkInvalid(t, sch, "some_text", "5", schema.TypeMismatched)
	//
	checkValid(t, sch, "anything", "5")
	checkValid(t, sch, "anything", "[{}]")
	checkInvalid(t, sch, "anything", "null", schema.InvalidNull)
	//
	checkInvalid(t, sch, "nothing_at_all", "5", schema.TypeMismatched)
}

// Schema type t validates decimal 0.5 as valid and float 1.5e0 as invalid.
func TestValidate_ValidValuesRange(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, valid_values: range::[0, 1]}")
	//
	checkValid(t, sch, "t", "0.5")
	checkValid(t, sch, "t", "1")
	checkInvalid(t, sch, "t", "1.5e0", schema.InvalidValue)
	checkInvalid(t, sch, "t", "2", schema.InvalidValue)
}

func TestValidate_ValidValuesList(t *testing.T) {
	sch := mustLoad(t, `type::{name: t, valid_values: [1, "hello", [1, 2]]}`)
	//
	checkValid(t, sch, "t", "1")
	checkValid(t, sch, "t", "\"hello\"")
	checkValid(t, sch, "t", "[1, 2]")
	// ints and decimals compare mathematically
	checkValid(t, sch, "t", "1.0")
	// floats never equal non-floats
	checkInvalid(t, sch, "t", "1e0", schema.InvalidValue)
	checkInvalid(t, sch, "t", "\"goodbye\"", schema.InvalidValue)
	// annotations on the candidate are disregarded
	checkValid(t, sch, "t", "a::1")
}

func TestValidate_OrderedElementsOccurs(t *testing.T) {
	sch := mustLoad(t, `
		type::{ordered_elements: [{type: int, occurs: range::[2, 3]}, string], name: t}
	`)
	//
	checkValid(t, sch, "t", "[1, 2, \"x\"]")
	checkValid(t, sch, "t", "[1, 2, 3, \"x\"]")
	checkInvalid(t, sch, "t", "[1, \"x\"]", schema.ElementMismatched)
	checkInvalid(t, sch, "t", "[1, 2, 3, 4, \"x\"]", schema.ElementMismatched)
	checkInvalid(t, sch, "t", "[1, 2]", schema.ElementMismatched)
	checkInvalid(t, sch, "t", "5", schema.TypeMismatched)
	checkInvalid(t, sch, "t", "null.list", schema.InvalidNull)
}

func TestValidate_OrderedElementsOptionalEntries(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: t, ordered_elements: [{type: int, occurs: optional}, string]}
	`)
	//
	checkValid(t, sch, "t", "[\"x\"]")
	checkValid(t, sch, "t", "[1, \"x\"]")
	checkInvalid(t, sch, "t", "[1, 1, \"x\"]", schema.ElementMismatched)
}

func TestValidate_FieldsClosed(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, fields: {a: int}, content: closed}")
	//
	checkValid(t, sch, "t", "{a: 1}")
	checkValid(t, sch, "t", "{}")
	checkInvalid(t, sch, "t", "{a: 1, b: 2}", schema.InvalidOpenContent)
	checkInvalid(t, sch, "t", "{a: \"x\"}", schema.FieldsNotMatched)
}

func TestValidate_FieldsOccurs(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: t, fields: {a: {type: int, occurs: required}, b: {type: string, occurs: range::[0, 2]}}}
	`)
	//
	checkValid(t, sch, "t", "{a: 1}")
	checkValid(t, sch, "t", "{a: 1, b: \"x\", b: \"y\"}")
	checkInvalid(t, sch, "t", "{b: \"x\"}", schema.FieldsNotMatched)
	checkInvalid(t, sch, "t", "{a: 1, b: \"x\", b: \"y\", b: \"z\"}", schema.FieldsNotMatched)
	// open content is permitted without content: closed
	checkValid(t, sch, "t", "{a: 1, c: 2}")
}

func TestValidate_Logic(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: all, all_of: [int, {valid_values: range::[0, 10]}]}
		type::{name: one, one_of: [{type: int}, {type: number}]}
		type::{name: negated, not: int}
		type::{name: anyof, any_of: [int, string]}
	`)
	//
	checkValid(t, sch, "all", "5")
	checkInvalid(t, sch, "all", "50", schema.AllTypesNotMatched)
	// 5 is an int and a number, so one_of fails on two matches
	checkInvalid(t, sch, "one", "5", schema.MoreThanOneTypeMatched)
	checkValid(t, sch, "one", "5.0")
	checkInvalid(t, sch, "one", "\"x\"", schema.NoTypesMatched)
	//
	checkValid(t, sch, "negated", "\"x\"")
	checkInvalid(t, sch, "negated", "5", schema.TypeMatched)
	//
	checkValid(t, sch, "anyof", "5")
	checkValid(t, sch, "anyof", "\"x\"")
	checkInvalid(t, sch, "anyof", "5.0", schema.NoTypesMatched)
}

func TestValidate_Lengths(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: short_text, codepoint_length: range::[1, 3]}
		type::{name: small_container, container_length: 2}
		type::{name: small_lob, byte_length: range::[0, 4]}
	`)
	//
	checkValid(t, sch, "short_text", "\"abc\"")
	checkValid(t, sch, "short_text", "\"ééé\"")
	checkInvalid(t, sch, "short_text", "\"abcd\"", schema.InvalidLength)
	checkInvalid(t, sch, "short_text", "\"\"", schema.InvalidLength)
	checkInvalid(t, sch, "short_text", "5", schema.TypeMismatched)
	//
	checkValid(t, sch, "small_container", "[1, 2]")
	checkValid(t, sch, "small_container", "{a: 1, b: 2}")
	checkInvalid(t, sch, "small_container", "[1]", schema.InvalidLength)
	//
	checkValid(t, sch, "small_lob", "{{\"ab\"}}")
	checkInvalid(t, sch, "small_lob", "{{\"abcde\"}}", schema.InvalidLength)
}

func TestValidate_Contains(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, contains: [1, \"x\"]}")
	//
	checkValid(t, sch, "t", "[1, \"x\", 2]")
	checkValid(t, sch, "t", "{a: 1, b: \"x\"}")
	checkInvalid(t, sch, "t", "[1]", schema.MissingValue)
}

func TestValidate_ElementDistinct(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: t, element: distinct::int}
	`)
	//
	checkValid(t, sch, "t", "[1, 2, 3]")
	checkInvalid(t, sch, "t", "[1, 2, 1]", schema.ElementNotDistinct)
	checkInvalid(t, sch, "t", "[1, \"x\"]", schema.ElementMismatched)
}

func TestValidate_FieldNames(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: t, field_names: distinct::{codepoint_length: range::[1, 2]}}
	`)
	//
	checkValid(t, sch, "t", "{ab: 1, cd: 2}")
	checkInvalid(t, sch, "t", "{abc: 1}", schema.FieldNamesMismatched)
	checkInvalid(t, sch, "t", "{ab: 1, ab: 2}", schema.FieldNamesNotDistinct)
}

// Annotations under ISL 1.0 list-level required semantics.
func TestValidate_Annotations(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, annotations: required::[a, b]}")
	//
	checkValid(t, sch, "t", "a::b::5")
	checkInvalid(t, sch, "t", "a::5", schema.MissingAnnotation)
	// absent closed::, extra annotations are permitted
	checkValid(t, sch, "t", "c::a::b::5")
	//
	closed := mustLoad(t, "type::{name: t, annotations: required::closed::[a, b]}")
	checkValid(t, closed, "t", "a::b::5")
	checkInvalid(t, closed, "t", "c::a::b::5", schema.UnexpectedAnnotation)
	//
	ordered := mustLoad(t, "type::{name: t, annotations: ordered::[a, b]}")
	checkValid(t, ordered, "t", "a::b::5")
	checkValid(t, ordered, "t", "b::5")
	checkInvalid(t, ordered, "t", "b::a::5", schema.AnnotationMismatched)
}

func TestValidate_Annotations2(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: t, annotations: closed::required::[a]}
	`)
	//
	checkValid(t, sch, "t", "a::5")
	checkInvalid(t, sch, "t", "5", schema.MissingAnnotation)
	checkInvalid(t, sch, "t", "a::b::5", schema.UnexpectedAnnotation)
}

func TestValidate_Regex(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: t, regex: "[a-z]+"}
		type::{name: ci, regex: i::"hello"}
	`)
	// the pattern is anchored at both ends
	checkValid(t, sch, "t", "\"abc\"")
	checkInvalid(t, sch, "t", "\"abc1\"", schema.RegexMismatched)
	checkInvalid(t, sch, "t", "\"\"", schema.RegexMismatched)
	checkInvalid(t, sch, "t", "5", schema.TypeMismatched)
	//
	checkValid(t, sch, "ci", "\"HELLO\"")
	checkInvalid(t, sch, "ci", "\"bye\"", schema.RegexMismatched)
}

func TestValidate_RegexDialectRejected(t *testing.T) {
	sys := newTestSystem(map[string]string{
		"bad.isl": `type::{name: t, regex: "\\p{L}+"}`,
	})
	//
	_, err := sys.LoadSchema("bad.isl")
	assert.Error(t, err)
}

func TestValidate_DecimalConstraints(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: prec, precision: range::[2, 4]}
		type::{name: scaled, scale: range::[1, 2]}
	`)
	//
	checkValid(t, sch, "prec", "1.5")
	checkValid(t, sch, "prec", "123.4")
	checkInvalid(t, sch, "prec", "1.", schema.InvalidLength)
	checkInvalid(t, sch, "prec", "12345.", schema.InvalidLength)
	checkInvalid(t, sch, "prec", "5", schema.TypeMismatched)
	//
	checkValid(t, sch, "scaled", "1.5")
	checkValid(t, sch, "scaled", "1.55")
	checkInvalid(t, sch, "scaled", "1.555", schema.InvalidLength)
	checkInvalid(t, sch, "scaled", "15.", schema.InvalidLength)
}

func TestValidate_Exponent2(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: t, exponent: range::[-2, 0]}
	`)
	//
	checkValid(t, sch, "t", "1.55")
	checkValid(t, sch, "t", "15.")
	checkInvalid(t, sch, "t", "1.555", schema.InvalidLength)
}

// Timestamp precision range month..day.
func TestValidate_TimestampPrecision(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, timestamp_precision: range::[month, day]}")
	//
	checkValid(t, sch, "t", "2024-05T")
	checkValid(t, sch, "t", "2024-05-03T")
	checkInvalid(t, sch, "t", "2024T", schema.InvalidValue)
	checkInvalid(t, sch, "t", "2024-05-03T00:00Z", schema.InvalidValue)
}

func TestValidate_TimestampOffset(t *testing.T) {
	sch := mustLoad(t, `type::{name: t, timestamp_offset: ["+07:00", "-00:00"]}`)
	//
	checkValid(t, sch, "t", "2024-05-03T00:00+07:00")
	checkValid(t, sch, "t", "2024-05-03T00:00-00:00")
	checkInvalid(t, sch, "t", "2024-05-03T00:00Z", schema.InvalidValue)
}

func TestValidate_Ieee754Float(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: single, ieee754_float: binary32}
		type::{name: half, ieee754_float: binary16}
	`)
	//
	checkValid(t, sch, "single", "0.5e0")
	checkValid(t, sch, "single", "nan")
	checkInvalid(t, sch, "single", "1.1e0", schema.InvalidIeee754Float)
	//
	checkValid(t, sch, "half", "0.5e0")
	checkValid(t, sch, "half", "65504e0")
	checkInvalid(t, sch, "half", "0.1e0", schema.InvalidIeee754Float)
}

func TestValidate_Utf8ByteLength(t *testing.T) {
	sch := mustLoad(t, `
		$ion_schema_2_0
		type::{name: t, utf8_byte_length: range::[1, 3]}
	`)
	//
	checkValid(t, sch, "t", "\"abc\"")
	checkInvalid(t, sch, "t", "\"abcd\"", schema.InvalidLength)
	// a two-codepoint string of three-byte characters exceeds the limit
	checkInvalid(t, sch, "t", "\"€€\"", schema.InvalidLength)
}

func TestValidate_NullAgainstEveryConstraint(t *testing.T) {
	sch := mustLoad(t, `
		type::{name: length_t, codepoint_length: 3}
		type::{name: regex_t, regex: "a"}
		type::{name: fields_t, fields: {a: int}}
	`)
	//
	checkInvalid(t, sch, "length_t", "null", schema.InvalidNull)
	checkInvalid(t, sch, "regex_t", "null.string", schema.InvalidNull)
	checkInvalid(t, sch, "fields_t", "null.struct", schema.InvalidNull)
}

// Leaves of the violation tree imply overall validity when absent.
func TestValidate_FlattenedViolations(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, all_of: [int, {valid_values: range::[0, 10]}]}")
	//
	violation, err := sch.Validate(element.MustReadOne("\"x\""), "t")
	require.NoError(t, err)
	require.NotNil(t, violation)
	//
	leaves := violation.FlattenedViolations()
	assert.NotEmpty(t, leaves)
	//
	for _, leaf := range leaves {
		assert.Empty(t, leaf.Children)
	}
}

func TestValidate_NullableAnnotation(t *testing.T) {
	sch := mustLoad(t, "type::{name: t, type: nullable::int}")
	//
	checkValid(t, sch, "t", "5")
	checkValid(t, sch, "t", "null")
	checkInvalid(t, sch, "t", "\"x\"", schema.TypeMismatched)
}
