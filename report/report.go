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

// Package report renders a dashboard pass for the terminal as markdown with
// ASCII charts, optionally styled with glamour.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/penny-vault/pv-dashboard/data"
)

const noChart = "(not enough data to chart)"

const reportTemplate = `# Price dashboard

Period **{{ .Period }}** for {{ join .Tickers ", " }}

## {{ .Ticker }}
{{ if .ViewMessage }}
> {{ .ViewMessage }}
{{ else }}
- **Last close** ({{ .Headline.CloseColumn }}): {{ float .Headline.LastClose 2 }}
- **1D change**: {{ pct .Headline.PctChange1D }}
- **Rows in period**: {{ .Headline.Rows }}{{ if .FirstDate }}
- **Range**: {{ .FirstDate }} to {{ .LastDate }}{{ end }}

` + "```" + `
{{ .PriceChart }}
` + "```" + `
{{ end }}
## Normalized comparison (base {{ float .Base 0 }})
{{ range .Lines }}
### {{ .Ticker }}

` + "```" + `
{{ .Chart }}
` + "```" + `
{{ else }}
> No ticker has enough data in this period.
{{ end }}{{ if .Skipped }}
Excluded: {{ range .Skipped }}
- {{ . }}{{ end }}
{{ end }}
## Summary metrics
{{ if .SummaryMessage }}
> {{ .SummaryMessage }}
{{ else }}
{{ .SummaryTable }}{{ end }}
## Correlation of daily returns
{{ if .CorrelationMessage }}
> {{ .CorrelationMessage }}
{{ else }}
{{ .CorrelationTable }}
` + "```" + `
{{ .Heatmap }}
` + "```" + `

Computed from {{ .CorrelationRows }} aligned rows.
{{ end }}`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":  strings.Join,
	"float": formatFloat,
	"pct":   formatPct,
}).Parse(reportTemplate))

// Options control how a dashboard is rendered
type Options struct {
	// Style is a glamour style name such as "dark", "light" or "notty"; an
	// empty style returns the raw markdown
	Style string

	// Width wraps glamour output; zero keeps the glamour default
	Width int
}

type line struct {
	Ticker string
	Chart  string
}

type view struct {
	Period  string
	Tickers []string
	Ticker  string

	ViewMessage string
	Headline    *data.Headline
	FirstDate   string
	LastDate    string
	PriceChart  string

	Base    float64
	Lines   []line
	Skipped []string

	SummaryMessage string
	SummaryTable   string

	CorrelationMessage string
	CorrelationTable   string
	Heatmap            string
	CorrelationRows    int
}

func newView(dashboard *data.Dashboard) *view {
	v := &view{
		Period:  dashboard.Period.String(),
		Tickers: dashboard.Tickers,
		Ticker:  dashboard.Ticker,
		Base:    data.NormalizedBase,
	}

	if dashboard.ViewErr != nil {
		v.ViewMessage = data.UserMessage(dashboard.ViewErr)
	} else {
		series := dashboard.View.Series
		v.Headline = dashboard.View.Headline
		if first, ok := series.DateAt(0); ok {
			last, _ := series.DateAt(series.Len() - 1)
			v.FirstDate = first.Format("2006-01-02")
			v.LastDate = last.Format("2006-01-02")
		}
		closes, _ := series.Frame.Column(v.Headline.CloseColumn)
		v.PriceChart = chartOrNotice(closes, fmt.Sprintf("%s %s", dashboard.Ticker, v.Headline.CloseColumn))
	}

	comparison := dashboard.Comparison
	for _, ticker := range comparison.Tickers {
		v.Lines = append(v.Lines, line{
			Ticker: ticker,
			Chart:  chartOrNotice(comparison.Lines[ticker].Vals[0], ticker+" (normalized)"),
		})
	}

	for ticker, err := range comparison.Skipped {
		v.Skipped = append(v.Skipped, fmt.Sprintf("%s: %s", ticker, err))
	}
	sort.Strings(v.Skipped)

	if dashboard.SummaryErr != nil {
		v.SummaryMessage = data.UserMessage(dashboard.SummaryErr)
	} else {
		v.SummaryTable = summaryTable(dashboard.Summary)
	}

	if dashboard.CorrelationErr != nil {
		v.CorrelationMessage = data.UserMessage(dashboard.CorrelationErr)
	} else {
		v.CorrelationTable = correlationTable(dashboard.Correlation)
		v.Heatmap = heatmap(dashboard.Correlation)
		v.CorrelationRows = dashboard.Correlation.Rows
	}

	return v
}

func chartOrNotice(vals []float64, caption string) string {
	if chart := lineChart(vals, caption); chart != "" {
		return chart
	}
	return noChart
}

// Markdown renders every section of dashboard as markdown
func Markdown(dashboard *data.Dashboard) (string, error) {
	sb := &strings.Builder{}
	if err := tmpl.Execute(sb, newView(dashboard)); err != nil {
		return "", fmt.Errorf("could not render dashboard: %w", err)
	}
	return sb.String(), nil
}

// Render renders dashboard as markdown and styles it with glamour when
// opts.Style is set
func Render(dashboard *data.Dashboard, opts Options) (string, error) {
	md, err := Markdown(dashboard)
	if err != nil {
		return "", err
	}

	if opts.Style == "" {
		return md, nil
	}

	renderOpts := []glamour.TermRendererOption{glamour.WithStandardStyle(opts.Style)}
	if opts.Width > 0 {
		renderOpts = append(renderOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(renderOpts...)
	if err != nil {
		return "", fmt.Errorf("could not create %q renderer: %w", opts.Style, err)
	}

	return renderer.Render(md)
}
