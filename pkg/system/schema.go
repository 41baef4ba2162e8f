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
	"fmt"
	"strings"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// Schema is a fully loaded and resolved schema document: its dialect
// version, imports, and named types, all registered in the owning system's
// type store.
type Schema struct {
	id      string
	version isl.Version
	imports []isl.Import
	// named types defined by this schema, in declaration order
	typeNames []string
	types     map[string]schema.TypeID
	// types visible through imports, first import wins
	imported map[string]schema.TypeID
	store    *schema.TypeStore
}

// ID returns the identifier this schema was loaded under.
func (s *Schema) ID() string {
	return s.id
}

// Version returns the ISL dialect of this schema.
func (s *Schema) Version() isl.Version {
	return s.version
}

// Imports returns the imports of this schema, in declaration order.
func (s *Schema) Imports() []isl.Import {
	return s.imports
}

// TypeNames returns the names of the types this schema defines, in
// declaration order.
func (s *Schema) TypeNames() []string {
	return s.typeNames
}

// Type resolves a name to a type definition: the schema's own types first,
// then imported types, then the built-in core types.
func (s *Schema) Type(name string) (*schema.TypeDefinition, bool) {
	if id, ok := s.types[name]; ok {
		return s.store.Get(id), true
	}
	//
	if id, ok := s.imported[name]; ok {
		return s.store.Get(id), true
	}
	//
	return nil, false
}

// Validate checks a value against the named type of this schema.
func (s *Schema) Validate(v element.Element, typeName string) (*schema.Violation, error) {
	def, ok := s.Type(typeName)
	if !ok {
		return nil, schema.InvalidSchemaf("schema %s has no type %s", s.id, typeName)
	}
	//
	return def.Validate(v, schema.NewContext(s.store)), nil
}

// String renders the schema's shape: its id, version, imports and types.
func (s *Schema) String() string {
	var sb strings.Builder
	//
	fmt.Fprintf(&sb, "schema %s (%s)\n", s.id, s.version)
	//
	for _, imp := range s.imports {
		if imp.TypeName == "" {
			fmt.Fprintf(&sb, "  import %s\n", imp.ID)
		} else if imp.Alias == "" {
			fmt.Fprintf(&sb, "  import %s/%s\n", imp.ID, imp.TypeName)
		} else {
			fmt.Fprintf(&sb, "  import %s/%s as %s\n", imp.ID, imp.TypeName, imp.Alias)
		}
	}
	//
	for _, name := range s.typeNames {
		def := s.store.Get(s.types[name])
		//
		fmt.Fprintf(&sb, "  type %s:", name)
		//
		for _, c := range def.Constraints() {
			fmt.Fprintf(&sb, " %s", c.Name())
		}
		//
		sb.WriteString("\n")
	}
	//
	return sb.String()
}
