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
package authority

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemAuthority(t *testing.T) {
	dir := t.TempDir()
	//
	err := os.WriteFile(filepath.Join(dir, "numbers.isl"), []byte("type::{name: positive_int}"), 0600)
	require.NoError(t, err)
	//
	auth := NewFileSystemDocumentAuthority(dir)
	//
	elements, err := auth.Elements("numbers.isl")
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.True(t, elements[0].HasAnnotation("type"))
	// missing documents yield an empty sequence, not an error, so a
	// schema system can fall through to its next authority
	elements, err = auth.Elements("missing.isl")
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestMapAuthority(t *testing.T) {
	auth := NewMapDocumentAuthority(map[string]string{
		"inline.isl": "type::{name: t} type::{name: u}",
	})
	//
	elements, err := auth.Elements("inline.isl")
	require.NoError(t, err)
	assert.Len(t, elements, 2)
	//
	elements, err = auth.Elements("other.isl")
	require.NoError(t, err)
	assert.Empty(t, elements)
}
