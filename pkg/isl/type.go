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
	"fmt"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
)

// ConstraintField is one raw (name, operand) pair of a type definition.
// Operands are kept as elements; interpretation happens when the type is
// compiled against a schema system.
type ConstraintField struct {
	Name  string
	Value element.Element
}

// Type is the AST form of a type definition: an optional name plus the
// ordered constraint fields it was written with.
type Type struct {
	// Name of the type; empty for inline anonymous types.
	Name string
	// Raw constraint fields, in document order.
	Constraints []ConstraintField
	// Occurrence range, only meaningful for inline types appearing as
	// ordered_elements or fields entries.
	Occurs *NonNegativeIntegerRange
}

// TypeRef is a reference to a type: a name (to be resolved against the
// enclosing schema and its imports), an inline anonymous type, or an
// import-qualified reference.  At most one of Inline and ImportID is set;
// otherwise the reference is by name.
type TypeRef struct {
	// Named reference, or the name of the imported type.
	Name string
	// Inline anonymous type.
	Inline *Type
	// Schema id of an inline import reference.
	ImportID string
	// Whether the reference was annotated nullable:: (ISL 1.0) or
	// $null_or:: (ISL 2.0).
	Nullable bool
	// Occurrence range attached to the reference, if any.
	Occurs *NonNegativeIntegerRange
}

// Import is one entry of a schema header's imports list.  An import either
// pulls in a whole schema, a single type, or a single type under an alias.
type Import struct {
	ID       string
	TypeName string
	Alias    string
}

// ParseTypeDefinition parses a type definition struct.  Top-level
// definitions must carry a name; inline definitions must not.
func ParseTypeDefinition(el element.Element, version Version, topLevel bool) (*Type, error) {
	if el.IsNull() || el.Type() != ion.StructType {
		return nil, fmt.Errorf("type definitions must be structs, found %v", el.Type())
	}
	//
	def := &Type{}
	//
	for _, f := range el.Fields() {
		switch f.Name {
		case "name":
			if !f.Value.IsText() || f.Value.IsNull() {
				return nil, fmt.Errorf("type names must be symbols, found %v", f.Value.Type())
			}
			//
			def.Name = f.Value.Text()
		case "occurs":
			occurs, err := ParseOccurs(f.Value, version)
			if err != nil {
				return nil, err
			}
			//
			def.Occurs = &occurs
		default:
			def.Constraints = append(def.Constraints, ConstraintField{f.Name, f.Value})
		}
	}
	//
	if topLevel && def.Name == "" {
		return nil, fmt.Errorf("top-level type definitions must have a name")
	}
	//
	if !topLevel && def.Name != "" {
		return nil, fmt.Errorf("inline type definitions can not have a name")
	}
	//
	return def, nil
}

// ParseTypeRef parses a type reference: a symbol naming a type, an inline
// type definition struct, or an inline import struct.
func ParseTypeRef(el element.Element, version Version) (*TypeRef, error) {
	if el.IsNull() {
		return nil, fmt.Errorf("type references must be symbols or structs, found %v", el.Type())
	}
	//
	ref := &TypeRef{Nullable: isNullableAnnotated(el, version)}
	//
	switch el.Type() {
	case ion.SymbolType:
		ref.Name = el.Text()
		//
		return ref, nil
	case ion.StructType:
		if id, ok := el.Field("id"); ok {
			// inline import reference
			if !idIsText(id) {
				return nil, fmt.Errorf("import ids must be strings or symbols")
			}
			//
			typeName, ok := el.Field("type")
			if !ok || !typeName.IsText() {
				return nil, fmt.Errorf("inline imports must name the imported type")
			}
			//
			ref.ImportID, ref.Name = id.Text(), typeName.Text()
			//
			return ref, nil
		}
		//
		inline, err := ParseTypeDefinition(el, version, false)
		if err != nil {
			return nil, err
		}
		//
		ref.Inline, ref.Occurs = inline, inline.Occurs
		//
		return ref, nil
	default:
		return nil, fmt.Errorf("type references must be symbols or structs, found %v", el.Type())
	}
}

// ParseImport parses one entry of a header's imports list.
func ParseImport(el element.Element) (Import, error) {
	var imp Import
	//
	if el.IsNull() || el.Type() != ion.StructType {
		return imp, fmt.Errorf("imports must be structs, found %v", el.Type())
	}
	//
	id, ok := el.Field("id")
	if !ok || !idIsText(id) {
		return imp, fmt.Errorf("imports must have a string or symbol id")
	}
	//
	imp.ID = id.Text()
	//
	if typeName, ok := el.Field("type"); ok {
		if !typeName.IsText() {
			return imp, fmt.Errorf("imported type names must be symbols")
		}
		//
		imp.TypeName = typeName.Text()
	}
	//
	if alias, ok := el.Field("as"); ok {
		if !alias.IsText() || imp.TypeName == "" {
			return imp, fmt.Errorf("import aliases require a single imported type")
		}
		//
		imp.Alias = alias.Text()
	}
	//
	return imp, nil
}

func isNullableAnnotated(el element.Element, version Version) bool {
	if version == V2_0 {
		return el.HasAnnotation("$null_or")
	}

	return el.HasAnnotation("nullable")
}

func idIsText(el element.Element) bool {
	return el.IsText() && !el.IsNull()
}
