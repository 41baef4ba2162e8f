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
package constraint

import (
	"fmt"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/isl"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// Env is the compilation environment a schema system provides when turning
// AST type definitions into constraints.  Resolution of named references
// happens against the enclosing schema and its imports; inline anonymous
// types are registered on the fly.
type Env interface {
	// Version returns the ISL dialect of the enclosing schema.
	Version() isl.Version
	// Store returns the type store definitions are registered in.
	Store() *schema.TypeStore
	// ResolveRef resolves a type reference to a registered definition.
	ResolveRef(ref *isl.TypeRef) (*schema.TypeDefinition, error)
}

// TypeReference is a resolved reference to a type, as held by compiled
// constraints.  References are by handle, never by owning pointer, which is
// what makes recursive types work.
type TypeReference struct {
	id       schema.TypeID
	name     string
	nullable bool
}

// NewTypeReference constructs a resolved reference.
func NewTypeReference(id schema.TypeID, name string, nullable bool) TypeReference {
	return TypeReference{id, name, nullable}
}

// Name returns the referenced type's name, for diagnostics.
func (r TypeReference) Name() string {
	return r.name
}

// Check validates a value against the referenced type, returning nil when
// it matches.
func (r TypeReference) Check(v element.Element, ctx *schema.Context) *schema.Violation {
	if r.nullable && v.IsNull() {
		return nil
	}
	//
	return ctx.Store.Get(r.id).Validate(v, ctx)
}

// Matches reports whether a value matches the referenced type, discarding
// the violation detail.  Used where match failure is expected and cheap,
// such as ordered element search.
func (r TypeReference) Matches(v element.Element, ctx *schema.Context) bool {
	return r.Check(v, ctx) == nil
}

// compileRef parses and resolves a type reference operand.
func compileRef(operand element.Element, env Env) (TypeReference, error) {
	ref, err := isl.ParseTypeRef(operand, env.Version())
	if err != nil {
		return TypeReference{}, err
	}
	//
	def, err := env.ResolveRef(ref)
	if err != nil {
		return TypeReference{}, err
	}
	//
	return TypeReference{def.ID(), def.Name(), ref.Nullable}, nil
}

// compileRefList parses and resolves a list of type reference operands.
func compileRefList(operand element.Element, env Env) ([]TypeReference, error) {
	if operand.IsNull() || operand.Type() != ion.ListType {
		return nil, fmt.Errorf("expected a list of type references, found %v", operand.Type())
	}
	//
	refs := make([]TypeReference, 0, len(operand.Elements()))
	//
	for _, el := range operand.Elements() {
		ref, err := compileRef(el, env)
		if err != nil {
			return nil, err
		}
		//
		refs = append(refs, ref)
	}
	//
	return refs, nil
}

// builder turns one raw constraint operand into a compiled constraint.
type builder func(operand element.Element, env Env) (schema.Constraint, error)

// builders maps constraint names onto their builders.  Version-specific
// availability is checked in Compile.
var builders map[string]builder

func init() {
	// assigned in init to break the initialisation cycle through
	// compileRef (inline types compile their own constraints)
	builders = map[string]builder{
		"type":                buildType,
		"all_of":              buildAllOf,
		"any_of":              buildAnyOf,
		"one_of":              buildOneOf,
		"not":                 buildNot,
		"ordered_elements":    buildOrderedElements,
		"fields":              buildFields,
		"field_names":         buildFieldNames,
		"contains":            buildContains,
		"container_length":    buildContainerLength,
		"byte_length":         buildByteLength,
		"codepoint_length":    buildCodepointLength,
		"utf8_byte_length":    buildUtf8ByteLength,
		"element":             buildElement,
		"annotations":         buildAnnotations,
		"precision":           buildPrecision,
		"scale":               buildScale,
		"exponent":            buildExponent,
		"timestamp_precision": buildTimestampPrecision,
		"timestamp_offset":    buildTimestampOffset,
		"valid_values":        buildValidValues,
		"regex":               buildRegex,
		"ieee754_float":       buildIeee754Float,
	}
}

// available reports whether a constraint exists in the given dialect.
func available(name string, version isl.Version) bool {
	switch name {
	case "scale":
		return version == isl.V1_0
	case "exponent", "utf8_byte_length":
		return version == isl.V2_0
	default:
		_, ok := builders[name]
		return ok
	}
}

// Compile turns the raw constraint fields of a type definition into
// compiled constraints.  Fields which are not constraints of the schema's
// dialect are open content and are skipped.
func Compile(def *isl.Type, env Env) ([]schema.Constraint, error) {
	var (
		constraints []schema.Constraint
		fieldsCon   *fieldsConstraint
		closed      bool
	)
	//
	for _, field := range def.Constraints {
		if field.Name == "content" {
			isClosed, err := parseContent(field.Value, env.Version())
			if err != nil {
				return nil, err
			}
			//
			closed = isClosed
			//
			continue
		}
		//
		if !available(field.Name, env.Version()) {
			// open content
			continue
		}
		//
		compiled, err := builders[field.Name](field.Value, env)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", field.Name, err)
		}
		//
		if fc, ok := compiled.(*fieldsConstraint); ok {
			fieldsCon = fc
		}
		//
		constraints = append(constraints, compiled)
	}
	// content: closed binds to the fields constraint, declaring every
	// undeclared field name invalid
	if closed {
		if fieldsCon == nil {
			fieldsCon = &fieldsConstraint{}
			constraints = append(constraints, fieldsCon)
		}
		//
		fieldsCon.closed = true
	}
	//
	return constraints, nil
}

func parseContent(operand element.Element, version isl.Version) (bool, error) {
	if operand.IsNull() || operand.Type() != ion.SymbolType || operand.Text() != "closed" {
		return false, fmt.Errorf("content: the only supported value is `closed`")
	}
	//
	return true, nil
}

// nullOrTypeViolation is the shared failure for constraints which require a
// particular (non-null) shape of value.
func nullOrTypeViolation(constraint string, v element.Element, ctx *schema.Context,
	expected string) *schema.Violation {
	if v.IsNull() {
		return schema.NewViolation(constraint, schema.InvalidNull, ctx.Path,
			"expected %s, found null value", expected)
	}
	//
	return schema.NewViolation(constraint, schema.TypeMismatched, ctx.Path,
		"expected %s, found %v", expected, v.Type())
}
