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

	"github.com/guptarohit/asciigraph"
	"github.com/penny-vault/pv-dashboard/data"
)

const (
	chartHeight = 12
	chartWidth  = 72
)

// lineChart plots the finite values of vals. Fewer than two plottable points
// yield an empty string.
func lineChart(vals []float64, caption string) string {
	points := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			points = append(points, v)
		}
	}

	if len(points) < 2 {
		return ""
	}

	return asciigraph.Plot(points,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}

// heatmapShades maps correlation buckets to cell shading, strongest first
var heatmapShades = []struct {
	min   float64
	shade string
}{
	{0.6, "█"},
	{0.2, "▓"},
	{-0.2, "▒"},
	{-0.6, "░"},
	{math.Inf(-1), "·"},
}

const heatmapLegend = "█ ≥ 0.6  ▓ ≥ 0.2  ▒ ≥ -0.2  ░ ≥ -0.6  · < -0.6"

func shade(r float64) string {
	if math.IsNaN(r) {
		return "?"
	}
	for _, bucket := range heatmapShades {
		if r >= bucket.min {
			return bucket.shade
		}
	}
	return "·"
}

// heatmap renders the correlation matrix as shaded cells, one row per ticker
func heatmap(corr *data.Correlation) string {
	matrix := corr.Matrix
	width := 4
	for _, name := range matrix.ColNames {
		width = max(width, len(name))
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%-*s", width, "")
	for _, name := range matrix.ColNames {
		fmt.Fprintf(sb, " %-*s", width, name)
	}
	sb.WriteString("\n")

	for rowIdx, label := range matrix.Index {
		fmt.Fprintf(sb, "%-*s", width, label)
		for _, col := range matrix.Vals {
			sb.WriteString(" " + strings.Repeat(shade(col[rowIdx]), width))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + heatmapLegend)
	return sb.String()
}
