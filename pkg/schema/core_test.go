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
package schema

import (
	"testing"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreTypeOf(t *testing.T) {
	for _, name := range []string{"int", "$int", "string", "text", "lob", "number",
		"any", "$any", "nothing", "$null", "struct", "sexp"} {
		_, ok := CoreTypeOf(name)
		assert.True(t, ok, name)
	}
	//
	for _, name := range []string{"null", "integer", "$nothing", "map", ""} {
		_, ok := CoreTypeOf(name)
		assert.False(t, ok, name)
	}
}

func TestCoreType_Matching(t *testing.T) {
	tests := []struct {
		core    string
		value   string
		matches bool
	}{
		{"int", "5", true},
		{"int", "5.0", false},
		{"int", "null.int", false},
		{"$int", "null.int", true},
		{"$int", "null", true},
		{"$int", "null.string", false},
		{"text", "\"s\"", true},
		{"text", "sym", true},
		{"text", "{{\"clob\"}}", false},
		{"number", "5e0", true},
		{"number", "5.0", true},
		{"number", "\"5\"", false},
		{"any", "[1]", true},
		{"any", "null", false},
		{"$any", "null.struct", true},
		{"nothing", "5", false},
		{"$null", "null", true},
		{"$null", "null.struct", false},
		{"$null", "5", false},
		{"lob", "{{aGVsbG8=}}", true},
	}
	//
	for _, tt := range tests {
		t.Run(tt.core+" "+tt.value, func(t *testing.T) {
			core, ok := CoreTypeOf(tt.core)
			require.True(t, ok)
			assert.Equal(t, tt.matches, core.Matches(element.MustReadOne(tt.value)))
		})
	}
}
