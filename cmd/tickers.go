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
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/dataframe"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tickersCmd)
}

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List the tickers found in the data directory",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		manager, catalog := newManager(ctx)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Ticker", "Rows", "Time Column", "Price Column", "First", "Last"})
		table.SetBorder(false)

		for _, ticker := range catalog.Names() {
			series, err := manager.Series(ctx, ticker)
			if err != nil {
				table.Append([]string{ticker, "", "", "", "", data.UserMessage(err)})
				continue
			}

			priceCol, err := data.ResolveCloseColumn(series)
			if err != nil {
				priceCol = "-"
			}

			first, last := "", ""
			if d, ok := series.DateAt(0); ok {
				first = dataframe.FormatTime(d)
			}
			if d, ok := series.DateAt(series.Len() - 1); ok {
				last = dataframe.FormatTime(d)
			}

			table.Append([]string{ticker, strconv.Itoa(series.Len()), series.TimeColumn, priceCol, first, last})
		}

		table.SetFooter([]string{"Num Tickers", fmt.Sprintf("%d", catalog.Len()), "", "", "", ""})
		table.Render()
	},
}
