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

package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pv-dashboard/data"
)

// markdownTable renders header and rows as a github flavored markdown table
func markdownTable(header []string, rows [][]string) string {
	sb := &strings.Builder{}
	table := tablewriter.NewWriter(sb)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
	return sb.String()
}

func summaryTable(summary *data.Summary) string {
	rows := make([][]string, len(summary.Labels))
	for idx, label := range summary.Labels {
		rows[idx] = append([]string{label}, summary.Cells[idx]...)
	}
	return markdownTable(summary.Header, rows)
}

func correlationTable(corr *data.Correlation) string {
	header := append([]string{""}, corr.Matrix.ColNames...)
	rows := make([][]string, corr.Matrix.Len())
	for rowIdx, label := range corr.Matrix.Index {
		row := make([]string, 0, corr.Matrix.ColCount()+1)
		row = append(row, label)
		for _, col := range corr.Matrix.Vals {
			row = append(row, formatFloat(col[rowIdx], 2))
		}
		rows[rowIdx] = row
	}
	return markdownTable(header, rows)
}

func formatFloat(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", precision, v)
}

func formatPct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v)
}
