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

	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
	"github.com/consensys/go-ionschema/pkg/schema/constraint"
)

// compileEnv is the compilation environment for one named type.  It
// resolves references against the enclosing schema (own types first, then
// imports in declaration order, then core types) and registers anonymous
// inline types under synthesized, parent-scoped names.
type compileEnv struct {
	system *SchemaSystem
	schema *Schema
	parent string
	anons  uint
}

// Version implements constraint.Env.
func (e *compileEnv) Version() isl.Version {
	return e.schema.version
}

// Store implements constraint.Env.
func (e *compileEnv) Store() *schema.TypeStore {
	return e.system.store
}

// ResolveRef implements constraint.Env.
func (e *compileEnv) ResolveRef(ref *isl.TypeRef) (*schema.TypeDefinition, error) {
	switch {
	case ref.Inline != nil:
		return e.resolveInline(ref.Inline)
	case ref.ImportID != "":
		return e.resolveImported(ref)
	default:
		return e.resolveNamed(ref.Name)
	}
}

// resolveInline registers and compiles an anonymous inline type.
func (e *compileEnv) resolveInline(inline *isl.Type) (*schema.TypeDefinition, error) {
	e.anons++
	//
	def := e.system.store.Add(fmt.Sprintf("%s$%d", e.parent, e.anons))
	//
	compiled, err := constraint.Compile(inline, e)
	if err != nil {
		return nil, err
	}
	//
	def.SetConstraints(compiled)
	//
	return def, nil
}

// resolveImported resolves an inline import reference by loading the
// referenced schema on demand.
func (e *compileEnv) resolveImported(ref *isl.TypeRef) (*schema.TypeDefinition, error) {
	imported, err := e.system.LoadSchema(ref.ImportID)
	if err != nil {
		return nil, err
	}
	//
	id, ok := imported.types[ref.Name]
	if !ok {
		return nil, schema.UnresolvedImportf("schema %s does not define type %s",
			ref.ImportID, ref.Name)
	}
	//
	return e.system.store.Get(id), nil
}

// resolveNamed resolves a name against the current schema, its imports, and
// the built-in core types, in that order.
func (e *compileEnv) resolveNamed(name string) (*schema.TypeDefinition, error) {
	if id, ok := e.schema.types[name]; ok {
		return e.system.store.Get(id), nil
	}
	//
	if id, ok := e.schema.imported[name]; ok {
		return e.system.store.Get(id), nil
	}
	//
	if id, ok := e.system.coreType(name); ok {
		return e.system.store.Get(id), nil
	}
	//
	return nil, schema.InvalidSchemaf("unresolved type reference %s in schema %s",
		name, e.schema.id)
}
