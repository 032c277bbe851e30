// Copyright 2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/penny-vault/pv-dashboard/export"
	"github.com/spf13/cobra"
)

var (
	exportPeriod string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportPeriod, "period", "P", "", "Period: 1mo, 3mo, 6mo, 1y, 5y or max")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "export", "Output directory for parquet files")

	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard datasets to parquet files",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		period := periodFlag(exportPeriod)
		manager, _ := newManager(ctx)

		result, err := export.Write(ctx, manager, period, exportOut)
		if err != nil {
			halt(err)
		}

		for _, path := range result.Files {
			fmt.Println(path)
		}
	},
}
