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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/amzn/ion-go/ion"
	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/consensys/go-ionschema/pkg/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate --directories DIR --schema ID --type NAME --input FILE",
	Short: "Validate the Ion values of a file against a schema type.",
	Long: `Validate the Ion values of a file against a schema type.
	Every top-level value of the input file is checked and reported
	individually.  The exit code is zero whether values are valid or
	invalid; a non-zero exit indicates a schema-load or I/O failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaSystem := newSchemaSystem(cmd)
		schemaID := GetString(cmd, "schema")
		typeName := GetString(cmd, "type")
		inputFile := GetString(cmd, "input")
		//
		sch, err := schemaSystem.LoadSchema(schemaID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		//
		values, err := element.ReadFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		//
		report, err := validationReport(sch.ID(), typeName, values, func(v element.Element) (*schema.Violation, error) {
			return sch.Validate(v, typeName)
		})
		//
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		//
		fmt.Println("Validation report:")
		fmt.Println(report)
	},
}

// validationReport renders an Ion text report: one struct per value with
// its result, the value itself, the schema id, and the violation tree on
// failure.
func validationReport(schemaID string, typeName string, values []element.Element,
	validate func(element.Element) (*schema.Violation, error)) (string, error) {
	var (
		sb    strings.Builder
		width = reportWidth()
	)
	//
	w := ion.NewTextWriter(&sb)
	//
	for _, value := range values {
		violation, err := validate(value)
		if err != nil {
			return "", err
		}
		//
		if err := writeResult(w, schemaID, value, violation, width); err != nil {
			return "", err
		}
	}
	//
	if err := w.Finish(); err != nil {
		return "", err
	}
	//
	return sb.String(), nil
}

func writeResult(w ion.Writer, schemaID string, value element.Element,
	violation *schema.Violation, width int) error {
	if err := w.BeginStruct(); err != nil {
		return err
	}
	//
	w.FieldName(ion.NewSymbolTokenFromString("result"))
	//
	if violation == nil {
		if err := w.WriteString(resultLabel(true)); err != nil {
			return err
		}
		//
		w.FieldName(ion.NewSymbolTokenFromString("value"))
		//
		if err := w.WriteString(truncate(value.String(), width)); err != nil {
			return err
		}
		//
		w.FieldName(ion.NewSymbolTokenFromString("schema"))
		//
		if err := w.WriteString(schemaID); err != nil {
			return err
		}
	} else {
		if err := w.WriteString(resultLabel(false)); err != nil {
			return err
		}
		//
		w.FieldName(ion.NewSymbolTokenFromString("value"))
		//
		if err := w.WriteString(truncate(value.String(), width)); err != nil {
			return err
		}
		//
		w.FieldName(ion.NewSymbolTokenFromString("schema"))
		//
		if err := w.WriteString(schemaID); err != nil {
			return err
		}
		//
		w.FieldName(ion.NewSymbolTokenFromString("violation"))
		//
		if err := w.WriteString(violation.String()); err != nil {
			return err
		}
	}
	//
	return w.EndStruct()
}

// resultLabel colorizes Valid/Invalid when writing to a terminal.
func resultLabel(valid bool) string {
	if valid {
		return color.GreenString("Valid")
	}

	return color.RedString("Invalid")
}

// reportWidth determines how wide echoed values may be before truncation.
func reportWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	//
	return width
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	//
	return s[:width] + "..."
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	validateCmd.Flags().StringArrayP("directories", "d", nil, "authority directories, in resolution order")
	validateCmd.Flags().StringP("schema", "s", "", "identifier of the schema to load")
	validateCmd.Flags().StringP("type", "t", "", "name of the type to validate against")
	validateCmd.Flags().StringP("input", "i", "", "file of Ion values to validate")
	//
	_ = validateCmd.MarkFlagRequired("directories")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("type")
	_ = validateCmd.MarkFlagRequired("input")
}
