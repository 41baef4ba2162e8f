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
	"strings"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
)

// CoreType is one of the built-in types every schema can reference without
// importing anything: the Ion types themselves, the text/lob/number unions,
// any and nothing, plus nullable $-prefixed variants of all but nothing.
type CoreType struct {
	name     string
	base     string
	nullable bool
}

// ionTypesByName maps the single-Ion-type core names onto their type tags.
var ionTypesByName = map[string]ion.Type{
	"null":      ion.NullType,
	"bool":      ion.BoolType,
	"int":       ion.IntType,
	"float":     ion.FloatType,
	"decimal":   ion.DecimalType,
	"timestamp": ion.TimestampType,
	"symbol":    ion.SymbolType,
	"string":    ion.StringType,
	"clob":      ion.ClobType,
	"blob":      ion.BlobType,
	"list":      ion.ListType,
	"sexp":      ion.SexpType,
	"struct":    ion.StructType,
}

// unionMembers maps the union core names onto their member type tags.
var unionMembers = map[string][]ion.Type{
	"text":   {ion.StringType, ion.SymbolType},
	"lob":    {ion.ClobType, ion.BlobType},
	"number": {ion.IntType, ion.FloatType, ion.DecimalType},
}

// CoreTypeOf resolves a name to a core type, if it denotes one.
func CoreTypeOf(name string) (CoreType, bool) {
	nullable := strings.HasPrefix(name, "$")
	base := strings.TrimPrefix(name, "$")
	//
	switch base {
	case "any":
	case "nothing":
		// nothing has no nullable variant
		if nullable {
			return CoreType{}, false
		}
	case "null":
		// bare null is not a type name; $null is
		if !nullable {
			return CoreType{}, false
		}
	default:
		_, isIon := ionTypesByName[base]
		_, isUnion := unionMembers[base]
		//
		if !isIon && !isUnion {
			return CoreType{}, false
		}
	}
	//
	return CoreType{name: name, base: base, nullable: nullable}, true
}

// Name returns the name this core type was referenced by.
func (c CoreType) Name() string {
	return c.name
}

// Matches reports whether a value inhabits this core type.  Non-nullable
// core types reject every null; nullable variants additionally accept
// untyped nulls and typed nulls of their base type(s).
func (c CoreType) Matches(v element.Element) bool {
	if c.base == "nothing" {
		return false
	}
	//
	if v.IsNull() {
		if !c.nullable {
			return false
		}
		// $any accepts any null; $null accepts only untyped nulls;
		// others accept untyped nulls and typed nulls of the base type
		if c.base == "any" {
			return true
		}
		//
		if v.Type() == ion.NullType || v.Type() == ion.NoType {
			return true
		}
		//
		if c.base == "null" {
			return false
		}
		//
		return c.baseMatches(v.Type())
	}
	//
	switch c.base {
	case "any":
		return true
	case "null":
		return false
	default:
		return c.baseMatches(v.Type())
	}
}

func (c CoreType) baseMatches(t ion.Type) bool {
	if ionType, ok := ionTypesByName[c.base]; ok {
		return t == ionType
	}
	//
	for _, member := range unionMembers[c.base] {
		if t == member {
			return true
		}
	}
	//
	return false
}
