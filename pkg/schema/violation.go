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
	"strings"
)

// ViolationCode indicates the kind of a violation.  The set is closed;
// every constraint reports one of these.
type ViolationCode uint8

// Available violation codes.
const (
	AllTypesNotMatched ViolationCode = iota
	AnnotationMismatched
	ElementMismatched
	ElementNotDistinct
	FieldNamesMismatched
	FieldNamesNotDistinct
	FieldsNotMatched
	InvalidIeee754Float
	InvalidLength
	InvalidNull
	InvalidOpenContent
	InvalidValue
	MissingAnnotation
	MissingValue
	MoreThanOneTypeMatched
	NoTypesMatched
	RegexMismatched
	TypeConstraintsUnsatisfied
	TypeMatched
	TypeMismatched
	UnexpectedAnnotation
)

func (c ViolationCode) String() string {
	switch c {
	case AllTypesNotMatched:
		return "all_types_not_matched"
	case AnnotationMismatched:
		return "annotation_mismatched"
	case ElementMismatched:
		return "element_mismatched"
	case ElementNotDistinct:
		return "element_not_distinct"
	case FieldNamesMismatched:
		return "field_names_mismatched"
	case FieldNamesNotDistinct:
		return "field_names_not_distinct"
	case FieldsNotMatched:
		return "fields_not_matched"
	case InvalidIeee754Float:
		return "invalid_ieee754_float"
	case InvalidLength:
		return "invalid_length"
	case InvalidNull:
		return "invalid_null"
	case InvalidOpenContent:
		return "invalid_open_content"
	case InvalidValue:
		return "invalid_value"
	case MissingAnnotation:
		return "missing_annotation"
	case MissingValue:
		return "missing_value"
	case MoreThanOneTypeMatched:
		return "more_than_one_type_matched"
	case NoTypesMatched:
		return "no_types_matched"
	case RegexMismatched:
		return "regex_mismatched"
	case TypeConstraintsUnsatisfied:
		return "type_constraints_unsatisfied"
	case TypeMatched:
		return "type_matched"
	case TypeMismatched:
		return "type_mismatched"
	default:
		return "unexpected_annotation"
	}
}

// Violation records why a validation failed.  Terminal constraint checks
// produce leaves; composite constraints nest the failures of their operands
// as children, so the tree mirrors the constraint tree.
type Violation struct {
	// Name of the constraint that produced this violation.
	Constraint string
	// Kind of the violation.
	Code ViolationCode
	// Human-readable detail.
	Message string
	// Path to the offending value within the validated value.
	Path IonPath
	// Nested failures, for composite constraints.
	Children []*Violation
}

// NewViolation constructs a leaf violation at the current path.
func NewViolation(constraint string, code ViolationCode, path *IonPath, format string, args ...any) *Violation {
	return &Violation{
		Constraint: constraint,
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		Path:       path.Snapshot(),
	}
}

// WithChildren attaches nested failures to this violation.
func (v *Violation) WithChildren(children ...*Violation) *Violation {
	v.Children = append(v.Children, children...)
	//
	return v
}

// FlattenedViolations returns the depth-first list of leaf violations,
// which are the root causes of this violation.
func (v *Violation) FlattenedViolations() []*Violation {
	var leaves []*Violation
	//
	v.flatten(&leaves)
	//
	return leaves
}

func (v *Violation) flatten(leaves *[]*Violation) {
	if len(v.Children) == 0 {
		*leaves = append(*leaves, v)
		return
	}
	//
	for _, child := range v.Children {
		child.flatten(leaves)
	}
}

// Error implements error, making a violation usable where an error is
// expected.
func (v *Violation) Error() string {
	return fmt.Sprintf("a validation error occurred: %s", v.Message)
}

// String renders the violation tree with indentation.
func (v *Violation) String() string {
	var sb strings.Builder
	//
	v.render(&sb, 0)
	//
	return sb.String()
}

func (v *Violation) render(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	//
	sb.WriteString(fmt.Sprintf("%s- %s: %s (%s) at %s\n", indent, v.Constraint, v.Message, v.Code, v.Path))
	//
	for _, child := range v.Children {
		child.render(sb, depth+1)
	}
}
