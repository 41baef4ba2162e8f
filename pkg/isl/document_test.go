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

func parseDocument(t *testing.T, doc string) *Document {
	t.Helper()
	//
	elements, err := element.ReadString(doc)
	require.NoError(t, err)
	//
	parsed, err := ParseDocument(elements)
	require.NoError(t, err)
	//
	return parsed
}

func TestParseDocument_Full(t *testing.T) {
	doc := parseDocument(t, `
		schema_header::{
			imports: [
				{id: "other.isl"},
				{id: "third.isl", type: foo, as: bar},
			],
		}
		type::{name: t, type: int}
		type::{name: u, codepoint_length: 5}
		schema_footer::{}
	`)
	//
	assert.Equal(t, V1_0, doc.Version)
	assert.True(t, doc.HasHeader)
	assert.True(t, doc.HasFooter)
	require.Len(t, doc.Imports, 2)
	assert.Equal(t, Import{ID: "other.isl"}, doc.Imports[0])
	assert.Equal(t, Import{ID: "third.isl", TypeName: "foo", Alias: "bar"}, doc.Imports[1])
	require.Len(t, doc.Types, 2)
	assert.Equal(t, "t", doc.Types[0].Name)
	assert.Equal(t, "u", doc.Types[1].Name)
}

func TestParseDocument_VersionMarker(t *testing.T) {
	doc := parseDocument(t, "$ion_schema_2_0 type::{name: t}")
	assert.Equal(t, V2_0, doc.Version)
	// no marker means 1.0
	doc = parseDocument(t, "type::{name: t}")
	assert.Equal(t, V1_0, doc.Version)
	// markers after the first definition are open content
	doc = parseDocument(t, "type::{name: t} $ion_schema_2_0")
	assert.Equal(t, V1_0, doc.Version)
}

func TestParseDocument_Malformed(t *testing.T) {
	for _, doc := range []string{
		"type::{}",                                    // unnamed top-level type
		"type::{name: 5}",                             // non-symbol name
		"schema_header::{imports: 5}",                 // non-list imports
		"schema_header::{imports: [{type: foo}]}",     // import without id
		"schema_header::{} schema_header::{}",         // duplicate header
		"schema_footer::{} type::{name: t}",           // type after footer
	} {
		elements, err := element.ReadString(doc)
		require.NoError(t, err)
		//
		_, err = ParseDocument(elements)
		assert.Error(t, err, doc)
	}
}

func TestParseTypeRef_Forms(t *testing.T) {
	ref, err := ParseTypeRef(element.MustReadOne("int"), V1_0)
	require.NoError(t, err)
	assert.Equal(t, "int", ref.Name)
	assert.Nil(t, ref.Inline)
	//
	ref, err = ParseTypeRef(element.MustReadOne("{type: int, occurs: 2}"), V1_0)
	require.NoError(t, err)
	require.NotNil(t, ref.Inline)
	require.NotNil(t, ref.Occurs)
	//
	ref, err = ParseTypeRef(element.MustReadOne(`{id: "other.isl", type: foo}`), V1_0)
	require.NoError(t, err)
	assert.Equal(t, "other.isl", ref.ImportID)
	assert.Equal(t, "foo", ref.Name)
	//
	ref, err = ParseTypeRef(element.MustReadOne("nullable::int"), V1_0)
	require.NoError(t, err)
	assert.True(t, ref.Nullable)
	//
	ref, err = ParseTypeRef(element.MustReadOne("$null_or::int"), V2_0)
	require.NoError(t, err)
	assert.True(t, ref.Nullable)
	//
	_, err = ParseTypeRef(element.MustReadOne("5"), V1_0)
	assert.Error(t, err)
}

func TestParseOccurs(t *testing.T) {
	occurs, err := ParseOccurs(element.MustReadOne("optional"), V1_0)
	require.NoError(t, err)
	lo, hi := occurs.Bounds()
	assert.Equal(t, uint64(0), lo)
	assert.Equal(t, uint64(1), hi)
	//
	occurs, err = ParseOccurs(element.MustReadOne("required"), V1_0)
	require.NoError(t, err)
	lo, hi = occurs.Bounds()
	assert.Equal(t, uint64(1), lo)
	assert.Equal(t, uint64(1), hi)
	//
	occurs, err = ParseOccurs(element.MustReadOne("range::[1, max]"), V1_0)
	require.NoError(t, err)
	lo, hi = occurs.Bounds()
	assert.Equal(t, uint64(1), lo)
	assert.Equal(t, uint64(0xffffffffffffffff), hi)
	//
	for _, text := range []string{"0", "-1", "wibble", "null"} {
		_, err = ParseOccurs(element.MustReadOne(text), V1_0)
		assert.Error(t, err, text)
	}
}
