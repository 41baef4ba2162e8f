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
	"github.com/consensys/go-ionschema/pkg/authority"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
	"github.com/consensys/go-ionschema/pkg/schema/constraint"
	log "github.com/sirupsen/logrus"
)

// SchemaSystem loads and resolves schemas.  Identifiers are resolved
// through an ordered list of document authorities (first hit wins); loaded
// schemas are cached, so loading the same id twice yields the same schema.
// A system is not safe for concurrent use.
type SchemaSystem struct {
	authorities []authority.DocumentAuthority
	store       *schema.TypeStore
	cache       map[string]*Schema
	// ids currently being loaded; re-entering one is an import cycle
	loading map[string]bool
	// lazily registered built-in type definitions
	coreTypes map[string]schema.TypeID
}

// NewSchemaSystem constructs a system over the given authorities.
func NewSchemaSystem(authorities ...authority.DocumentAuthority) *SchemaSystem {
	return &SchemaSystem{
		authorities: authorities,
		store:       schema.NewTypeStore(),
		cache:       make(map[string]*Schema),
		loading:     make(map[string]bool),
		coreTypes:   make(map[string]schema.TypeID),
	}
}

// Store returns the type store shared by every schema of this system.
func (s *SchemaSystem) Store() *schema.TypeStore {
	return s.store
}

// LoadSchema resolves an identifier to a schema, consulting the cache
// first, then the authorities in order.
func (s *SchemaSystem) LoadSchema(id string) (*Schema, error) {
	if cached, ok := s.cache[id]; ok {
		return cached, nil
	}
	//
	if s.loading[id] {
		return nil, schema.InvalidSchemaf("import cycle detected involving %s", id)
	}
	//
	s.loading[id] = true
	defer delete(s.loading, id)
	//
	log.Debugf("loading schema %s", id)
	//
	elements, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	//
	doc, err := isl.ParseDocument(elements)
	if err != nil {
		return nil, schema.InvalidSchemaf("schema %s: %v", id, err)
	}
	//
	sch := &Schema{
		id:       id,
		version:  doc.Version,
		imports:  doc.Imports,
		types:    make(map[string]schema.TypeID),
		imported: make(map[string]schema.TypeID),
		store:    s.store,
	}
	// process imports in declaration order
	for _, imp := range doc.Imports {
		if err := s.processImport(sch, imp); err != nil {
			return nil, err
		}
	}
	// register every named type before compiling any, so that forward and
	// recursive references resolve
	for _, def := range doc.Types {
		if _, dup := sch.types[def.Name]; dup {
			return nil, schema.InvalidSchemaf("schema %s defines type %s twice", id, def.Name)
		}
		//
		registered := s.store.Add(def.Name)
		sch.types[def.Name] = registered.ID()
		sch.typeNames = append(sch.typeNames, def.Name)
		//
		log.Debugf("schema %s: registered type %s as #%d", id, def.Name, registered.ID())
	}
	// compile every named type
	for _, def := range doc.Types {
		env := &compileEnv{system: s, schema: sch, parent: def.Name}
		//
		compiled, err := constraint.Compile(def, env)
		if err != nil {
			return nil, schema.InvalidSchemaf("schema %s, type %s: %v", id, def.Name, err)
		}
		//
		s.store.Get(sch.types[def.Name]).SetConstraints(compiled)
	}
	//
	s.cache[id] = sch
	//
	return sch, nil
}

// fetch queries the authorities in order, returning the first non-empty
// document.
func (s *SchemaSystem) fetch(id string) ([]element.Element, error) {
	for _, auth := range s.authorities {
		elements, err := auth.Elements(id)
		//
		if err != nil {
			return nil, schema.WrapIO(err, id)
		}
		//
		if len(elements) > 0 {
			return elements, nil
		}
	}
	//
	return nil, schema.InvalidSchemaf("schema %s not found in any authority", id)
}

// processImport loads an imported schema and makes its types visible.  The
// first import to provide a name wins.
func (s *SchemaSystem) processImport(sch *Schema, imp isl.Import) error {
	log.Debugf("schema %s: processing import %s", sch.id, imp.ID)
	//
	imported, err := s.LoadSchema(imp.ID)
	if err != nil {
		return err
	}
	//
	if imp.TypeName == "" {
		// whole-schema import
		for _, name := range imported.typeNames {
			if _, ok := sch.imported[name]; !ok {
				sch.imported[name] = imported.types[name]
			}
		}
		//
		return nil
	}
	//
	id, ok := imported.types[imp.TypeName]
	if !ok {
		return schema.UnresolvedImportf("schema %s imports type %s from %s, which does not define it",
			sch.id, imp.TypeName, imp.ID)
	}
	//
	name := imp.TypeName
	if imp.Alias != "" {
		name = imp.Alias
	}
	//
	if _, taken := sch.imported[name]; !taken {
		sch.imported[name] = id
	}
	//
	return nil
}

// coreType lazily registers the definition of a built-in type.
func (s *SchemaSystem) coreType(name string) (schema.TypeID, bool) {
	if id, ok := s.coreTypes[name]; ok {
		return id, true
	}
	//
	core, ok := schema.CoreTypeOf(name)
	if !ok {
		return 0, false
	}
	//
	def := s.store.Add(name)
	def.SetConstraints([]schema.Constraint{constraint.Core(core)})
	s.coreTypes[name] = def.ID()
	//
	return def.ID(), true
}
