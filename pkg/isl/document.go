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

// Document is the AST of one schema document: its dialect version, imports
// and type definitions.  Top-level values which are neither the version
// marker, the header, a type definition nor the footer are open content and
// are not represented.
type Document struct {
	Version   Version
	Imports   []Import
	Types     []*Type
	HasHeader bool
	HasFooter bool
}

// ParseDocument parses the top-level element sequence of a schema document.
// Version selection: a $ion_schema_2_0 symbol before any header or type
// definition selects ISL 2.0; otherwise the document is ISL 1.0.
func ParseDocument(elements []element.Element) (*Document, error) {
	doc := &Document{Version: detectVersion(elements)}
	//
	for _, el := range elements {
		switch {
		case el.HasAnnotation("schema_header") && el.Type() == ion.StructType:
			if doc.HasHeader {
				return nil, fmt.Errorf("schema documents can have at most one schema_header")
			}
			//
			doc.HasHeader = true
			//
			if err := parseHeader(doc, el); err != nil {
				return nil, err
			}
		case el.HasAnnotation("type") && el.Type() == ion.StructType:
			if doc.HasFooter {
				return nil, fmt.Errorf("type definitions can not appear after the schema_footer")
			}
			//
			def, err := ParseTypeDefinition(el, doc.Version, true)
			if err != nil {
				return nil, err
			}
			//
			doc.Types = append(doc.Types, def)
		case el.HasAnnotation("schema_footer") && el.Type() == ion.StructType:
			if doc.HasFooter {
				return nil, fmt.Errorf("schema documents can have at most one schema_footer")
			}
			//
			doc.HasFooter = true
		default:
			// open content
			continue
		}
	}
	//
	return doc, nil
}

// detectVersion inspects the leading top-level values for a version marker.
func detectVersion(elements []element.Element) Version {
	for _, el := range elements {
		// only symbols before the first schema_header or type definition are
		// candidates
		if el.Type() == ion.SymbolType && !el.IsNull() && len(el.Annotations()) == 0 {
			if el.Text() == VersionMarker2_0 {
				return V2_0
			}
			//
			if el.Text() == VersionMarker1_0 {
				return V1_0
			}
			//
			continue
		}
		//
		if el.HasAnnotation("schema_header") || el.HasAnnotation("type") {
			break
		}
	}
	//
	return V1_0
}

func parseHeader(doc *Document, header element.Element) error {
	imports, ok := header.Field("imports")
	if !ok {
		return nil
	}
	//
	if imports.IsNull() || imports.Type() != ion.ListType {
		return fmt.Errorf("schema_header imports must be a list")
	}
	//
	for _, el := range imports.Elements() {
		imp, err := ParseImport(el)
		if err != nil {
			return err
		}
		//
		doc.Imports = append(doc.Imports, imp)
	}
	//
	return nil
}
