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

package handler

import (
	"math"
	"strconv"
	"time"

	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/dataframe"
)

// number is a float64 that serializes NaN and infinities as null
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func numbers(vals []float64) []number {
	res := make([]number, len(vals))
	for idx, v := range vals {
		res[idx] = number(v)
	}
	return res
}

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Time    string `json:"time" example:"2021-06-19T08:09:10.115924-05:00"`
}

// MessageResponse is returned for errors and for sections that could not be
// rendered
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TickerListResponse struct {
	Tickers       []string `json:"tickers"`
	Periods       []string `json:"periods"`
	DefaultPeriod string   `json:"defaultPeriod"`
}

type HeadlineResponse struct {
	CloseColumn string `json:"closeColumn"`
	LastClose   number `json:"lastClose"`
	PrevClose   number `json:"prevClose"`
	PctChange1D number `json:"pctChange1D"`
	Rows        int    `json:"rows"`
}

type SeriesResponse struct {
	TimeColumn string              `json:"timeColumn,omitempty"`
	Index      []int               `json:"index"`
	Dates      []string            `json:"dates,omitempty"`
	Columns    []string            `json:"columns"`
	Values     map[string][]number `json:"values"`
}

type TickerResponse struct {
	Ticker   string           `json:"ticker"`
	Period   string           `json:"period"`
	Headline HeadlineResponse `json:"headline"`
	Series   SeriesResponse   `json:"series"`
}

type LineResponse struct {
	Index []int    `json:"index"`
	Dates []string `json:"dates,omitempty"`
	Value []number `json:"value"`
}

type ComparisonResponse struct {
	Period  string                  `json:"period"`
	Base    float64                 `json:"base"`
	Tickers []string                `json:"tickers"`
	Lines   map[string]LineResponse `json:"lines"`
	Skipped map[string]string       `json:"skipped,omitempty"`
}

type CorrelationResponse struct {
	Period  string            `json:"period"`
	Tickers []string          `json:"tickers"`
	Rows    int               `json:"rows"`
	Matrix  [][]number        `json:"matrix,omitempty"`
	Message string            `json:"message,omitempty"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

type SummaryResponse struct {
	Header  []string   `json:"header,omitempty"`
	Labels  []string   `json:"labels,omitempty"`
	Cells   [][]string `json:"cells,omitempty"`
	Message string     `json:"message,omitempty"`
}

type DashboardResponse struct {
	Period      string              `json:"period"`
	Tickers     []string            `json:"tickers"`
	Ticker      string              `json:"ticker"`
	View        *TickerResponse     `json:"view,omitempty"`
	ViewMessage string              `json:"viewMessage,omitempty"`
	Comparison  ComparisonResponse  `json:"comparison"`
	Summary     SummaryResponse     `json:"summary"`
	Correlation CorrelationResponse `json:"correlation"`
}

func formatDates(dates []time.Time) []string {
	if dates == nil {
		return nil
	}
	res := make([]string, len(dates))
	for idx, d := range dates {
		res[idx] = dataframe.FormatTime(d)
	}
	return res
}

func skippedMessages(skipped map[string]error) map[string]string {
	if len(skipped) == 0 {
		return nil
	}
	res := make(map[string]string, len(skipped))
	for ticker, err := range skipped {
		res[ticker] = err.Error()
	}
	return res
}

func newTickerResponse(view *data.TickerView) *TickerResponse {
	series := view.Series
	resp := &TickerResponse{
		Ticker: view.Ticker,
		Period: view.Period.String(),
		Headline: HeadlineResponse{
			CloseColumn: view.Headline.CloseColumn,
			LastClose:   number(view.Headline.LastClose),
			PrevClose:   number(view.Headline.PrevClose),
			PctChange1D: number(view.Headline.PctChange1D),
			Rows:        view.Headline.Rows,
		},
		Series: SeriesResponse{
			TimeColumn: series.TimeColumn,
			Index:      series.Frame.Index,
			Dates:      formatDates(series.Dates),
			Columns:    series.Frame.ColNames,
			Values:     make(map[string][]number, series.Frame.ColCount()),
		},
	}

	for idx, col := range series.Frame.ColNames {
		resp.Series.Values[col] = numbers(series.Frame.Vals[idx])
	}

	return resp
}

func newComparisonResponse(comparison *data.Comparison) ComparisonResponse {
	resp := ComparisonResponse{
		Period:  comparison.Period.String(),
		Base:    data.NormalizedBase,
		Tickers: comparison.Tickers,
		Lines:   make(map[string]LineResponse, len(comparison.Tickers)),
		Skipped: skippedMessages(comparison.Skipped),
	}

	for _, ticker := range comparison.Tickers {
		line := comparison.Lines[ticker]
		resp.Lines[ticker] = LineResponse{
			Index: line.Index,
			Dates: formatDates(comparison.Dates[ticker]),
			Value: numbers(line.Vals[0]),
		}
	}

	return resp
}

func newCorrelationResponse(period data.Period, corr *data.Correlation, matrix *data.ReturnsMatrix, err error) CorrelationResponse {
	resp := CorrelationResponse{
		Period:  period.String(),
		Tickers: []string{},
	}

	if matrix != nil {
		resp.Skipped = skippedMessages(matrix.Skipped)
		resp.Rows = matrix.Frame.Len()
	}

	if err != nil {
		resp.Message = data.UserMessage(err)
		return resp
	}

	resp.Tickers = corr.Matrix.Index
	resp.Rows = corr.Rows
	resp.Matrix = make([][]number, corr.Matrix.Len())
	for row := range corr.Matrix.Index {
		resp.Matrix[row] = make([]number, corr.Matrix.ColCount())
		for col := range corr.Matrix.ColNames {
			resp.Matrix[row][col] = number(corr.Matrix.Vals[col][row])
		}
	}

	return resp
}

func newSummaryResponse(summary *data.Summary, err error) SummaryResponse {
	if err != nil {
		return SummaryResponse{Message: data.UserMessage(err)}
	}
	return SummaryResponse{
		Header: summary.Header,
		Labels: summary.Labels,
		Cells:  summary.Cells,
	}
}
