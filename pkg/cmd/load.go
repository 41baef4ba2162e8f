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

	"github.com/spf13/cobra"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load --directories DIR --schema ID",
	Short: "Load a schema and print its resolved form.",
	Long: `Load a schema and print its resolved form.
	Schema identifiers are resolved against the given authority
	directories, in order; the first directory providing the document wins.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaSystem := newSchemaSystem(cmd)
		schemaID := GetString(cmd, "schema")
		//
		sch, err := schemaSystem.LoadSchema(schemaID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		//
		fmt.Print(sch)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	loadCmd.Flags().StringArrayP("directories", "d", nil, "authority directories, in resolution order")
	loadCmd.Flags().StringP("schema", "s", "", "identifier of the schema to load")
	//
	_ = loadCmd.MarkFlagRequired("directories")
	_ = loadCmd.MarkFlagRequired("schema")
}
