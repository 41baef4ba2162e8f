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
	"regexp"
	"strings"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/schema"
)

// regexConstraint requires the text of a string or symbol to match a
// regular expression.  The ISL regex dialect is a restricted PCRE subset;
// patterns are translated onto the host regexp engine, anchored at both
// ends, with the i and m flags carried as annotations on the pattern.
type regexConstraint struct {
	pattern string
	re      *regexp.Regexp
}

func buildRegex(operand element.Element, env Env) (schema.Constraint, error) {
	if operand.IsNull() || operand.Type() != ion.StringType {
		return nil, fmt.Errorf("expected a string pattern, found %v", operand.Type())
	}
	//
	pattern := operand.Text()
	//
	if err := checkRegexDialect(pattern); err != nil {
		return nil, err
	}
	//
	var flags string
	//
	if operand.HasAnnotation("i") {
		flags += "i"
	}
	//
	if operand.HasAnnotation("m") {
		flags += "m"
	}
	//
	anchored := "^(?:" + pattern + ")$"
	if flags != "" {
		anchored = "(?" + flags + ")" + anchored
	}
	//
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %v", pattern, err)
	}
	//
	return &regexConstraint{pattern, re}, nil
}

// checkRegexDialect rejects pattern constructs outside the ISL regex
// subset: unicode property escapes, backreferences, and lookaround or other
// (?...) group extensions.
func checkRegexDialect(pattern string) error {
	const escapable = `\dDsSwWtnrfvbBaexz.*+?()[]{}|^$-/"'`
	//
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			if i+1 >= len(pattern) {
				return fmt.Errorf("invalid regex %q: trailing backslash", pattern)
			}
			//
			next := pattern[i+1]
			//
			if next == 'p' || next == 'P' {
				return fmt.Errorf("invalid regex %q: unicode property escapes are not supported", pattern)
			}
			//
			if next >= '1' && next <= '9' {
				return fmt.Errorf("invalid regex %q: backreferences are not supported", pattern)
			}
			//
			if !strings.ContainsRune(escapable, rune(next)) {
				return fmt.Errorf("invalid regex %q: unsupported escape \\%c", pattern, next)
			}
			//
			i++
		case '(':
			if i+1 < len(pattern) && pattern[i+1] == '?' {
				return fmt.Errorf("invalid regex %q: group extensions are not supported", pattern)
			}
		}
	}
	//
	return nil
}

// Name implements schema.Constraint.
func (c *regexConstraint) Name() string {
	return "regex"
}

// Validate implements schema.Constraint.
func (c *regexConstraint) Validate(v element.Element, ctx *schema.Context) *schema.Violation {
	if v.IsNull() || !v.IsText() {
		return nullOrTypeViolation("regex", v, ctx, "a string or symbol")
	}
	//
	if !c.re.MatchString(v.Text()) {
		return schema.NewViolation("regex", schema.RegexMismatched, ctx.Path,
			"value %q doesn't match the regex %q", v.Text(), c.pattern)
	}
	//
	return nil
}
