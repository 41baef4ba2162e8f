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
	"github.com/consensys/go-ionschema/pkg/schema"
	"github.com/stretchr/testify/require"
)

// Loads a schema (and its import) from disk through a file system
// authority, then validates a handful of values end to end.
func TestLoadSchema_FromDisk(t *testing.T) {
	sys := NewSchemaSystem(authority.NewFileSystemDocumentAuthority("testdata"))
	//
	sch, err := sys.LoadSchema("customer.isl")
	require.NoError(t, err)
	//
	checkValid(t, sch, "customer", `{
		first_name: "Ada",
		last_name: "Lovelace",
		age: 36,
		addresses: ["12 St James Square"],
	}`)
	// imported constraint: names are limited to forty codepoints
	checkInvalid(t, sch, "customer", `{
		first_name: "Adaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		last_name: "Lovelace",
	}`, schema.InvalidLength)
	// closed content
	checkInvalid(t, sch, "customer", `{
		first_name: "Ada",
		last_name: "Lovelace",
		nickname: "The Enchantress of Number",
	}`, schema.InvalidOpenContent)
	// missing required field
	checkInvalid(t, sch, "customer", `{first_name: "Ada"}`, schema.FieldsNotMatched)
}
