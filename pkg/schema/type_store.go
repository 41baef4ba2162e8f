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
	"fmt"

	"github.com/consensys/go-ionschema/pkg/element"
)

// TypeID is a stable handle onto a type definition within a TypeStore.
// Handles let constraints reference types (including recursively) without
// owning pointers into each other.
type TypeID uint

// Constraint is a single predicate over Ion values.  Constraints are
// composable: several of them make up a type definition, and some of them
// reference further types through the store.
type Constraint interface {
	// Name returns the ISL field name of this constraint.
	Name() string
	// Validate checks the given value, returning nil on success or the
	// violation describing the failure.
	Validate(v element.Element, ctx *Context) *Violation
}

// Context carries the read-only state a validation pass threads through
// constraint evaluation: the type store, the cursor into the value tree,
// and the recursion guard for cyclic type graphs.
type Context struct {
	Store *TypeStore
	Path  *IonPath
	// visited tracks (type, path) pairs currently being validated, which
	// breaks evaluation cycles on recursive types.
	visited map[visitKey]bool
}

type visitKey struct {
	id   TypeID
	path string
}

// NewContext constructs a fresh validation context over the given store.
func NewContext(store *TypeStore) *Context {
	return &Context{Store: store, Path: NewIonPath(), visited: make(map[visitKey]bool)}
}

// Enter marks a (type, value) pair as being validated, returning true if it
// was newly marked and false if it already was.  Callers that receive true
// must Leave with the same arguments afterwards.
func (c *Context) Enter(id TypeID) bool {
	key := visitKey{id, c.Path.String()}
	//
	if c.visited[key] {
		return false
	}
	//
	c.visited[key] = true
	//
	return true
}

// Leave unmarks a (type, value) pair.
func (c *Context) Leave(id TypeID) {
	delete(c.visited, visitKey{id, c.Path.String()})
}

// TypeDefinition is a resolved type: an optional name plus the constraints
// a value must satisfy.
type TypeDefinition struct {
	id          TypeID
	name        string
	constraints []Constraint
}

// ID returns this type's handle.
func (t *TypeDefinition) ID() TypeID {
	return t.id
}

// Name returns this type's name; synthesized for anonymous types.
func (t *TypeDefinition) Name() string {
	return t.name
}

// Constraints returns the constraints making up this type.
func (t *TypeDefinition) Constraints() []Constraint {
	return t.constraints
}

// SetConstraints installs the constraints of this type.  Definitions are
// registered before they are compiled so that (mutually) recursive
// references resolve; this completes the registration.
func (t *TypeDefinition) SetConstraints(constraints []Constraint) {
	t.constraints = constraints
}

// Validate checks a value against every constraint of this type.  On
// failure the individual constraint violations are collected, in document
// order, under a single type_constraints_unsatisfied parent.
func (t *TypeDefinition) Validate(v element.Element, ctx *Context) *Violation {
	if !ctx.Enter(t.id) {
		// already validating this (type, value) pair further up the
		// stack; treat the cycle as satisfied
		return nil
	}
	//
	defer ctx.Leave(t.id)
	//
	var children []*Violation
	//
	for _, c := range t.constraints {
		if violation := c.Validate(v, ctx); violation != nil {
			children = append(children, violation)
		}
	}
	//
	if len(children) == 0 {
		return nil
	}
	//
	violation := NewViolation(t.name, TypeConstraintsUnsatisfied, ctx.Path,
		"value didn't satisfy type constraint(s)")
	//
	return violation.WithChildren(children...)
}

// TypeStore owns every type definition of a schema system and addresses
// them by stable handles.  The store is append-only: definitions are never
// removed or replaced.
type TypeStore struct {
	types []*TypeDefinition
}

// NewTypeStore constructs an empty store.
func NewTypeStore() *TypeStore {
	return &TypeStore{}
}

// Add registers a new definition under the given name (empty for
// anonymous types), returning it with its handle assigned.
func (s *TypeStore) Add(name string) *TypeDefinition {
	def := &TypeDefinition{id: TypeID(len(s.types)), name: name}
	s.types = append(s.types, def)
	//
	return def
}

// Get returns the definition behind a handle.
func (s *TypeStore) Get(id TypeID) *TypeDefinition {
	if int(id) >= len(s.types) {
		panic(fmt.Sprintf("unknown type id %d", id))
	}

	return s.types[id]
}

// Len returns the number of registered definitions.
func (s *TypeStore) Len() int {
	return len(s.types)
}
