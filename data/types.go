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

package data

import (
	"time"

	"github.com/penny-vault/pv-dashboard/dataframe"
)

const (
	PriceFileSuffix = "_prices.csv"
	SummaryFileName = "summary_metrics.csv"
	CloseColumn     = "Close"

	NormalizedBase        = 100.0
	MinSeriesRows         = 2
	MinCorrelationColumns = 2
	MinCorrelationRows    = 5
)

// TimeColumns lists the recognized names of the time column in priority order
var TimeColumns = []string{"Date", "datetime", "Datetime"}

// Series is a single parsed ticker file. Rows stay in file order, which is
// trusted to be chronological.
type Series struct {
	Ticker string
	Path   string

	// TimeColumn is the recognized time column, empty when the series is
	// indexed by row position only
	TimeColumn string
	Dates      []time.Time

	// Columns lists every column except the time column in file order
	Columns []string
	Numeric map[string]bool

	// Frame holds the numeric columns indexed by row position in the file
	Frame *dataframe.DataFrame[int]
}

// Headline summarizes the last two rows of a period-filtered series
type Headline struct {
	CloseColumn string  `json:"closeColumn"`
	LastClose   float64 `json:"lastClose"`
	PrevClose   float64 `json:"prevClose"`
	PctChange1D float64 `json:"pctChange1D"`
	Rows        int     `json:"rows"`
}

// TickerView is everything needed to render the single-ticker section
type TickerView struct {
	Ticker   string
	Period   Period
	Headline *Headline
	Series   *Series
}

// Comparison holds one normalized index series per ticker; each starts at
// NormalizedBase on the first row of its own window
type Comparison struct {
	Period  Period
	Tickers []string
	Lines   dataframe.Map[int]
	Dates   map[string][]time.Time
	Skipped map[string]error
}

// ReturnsMatrix holds daily returns of the literal Close column, one column per
// contributing ticker, aligned by trailing row position
type ReturnsMatrix struct {
	Period  Period
	Frame   *dataframe.DataFrame[int]
	Dates   []time.Time
	Skipped map[string]error
}

// Correlation is the pairwise Pearson correlation of a returns matrix
type Correlation struct {
	Period Period
	Matrix *dataframe.DataFrame[string]
	Rows   int
}

// Summary is the optional precomputed metrics table, passed through verbatim
type Summary struct {
	Path   string
	Header []string
	Labels []string
	Cells  [][]string
	Frame  *dataframe.DataFrame[string]
}

// Len returns the number of rows in the series
func (s *Series) Len() int {
	if s == nil || s.Frame == nil {
		return 0
	}
	return s.Frame.Len()
}

// HasTimeIndex reports whether rows are keyed by a parsed time column
func (s *Series) HasTimeIndex() bool {
	return s.TimeColumn != ""
}

// DateAt returns the timestamp of row i if the series has a time index
func (s *Series) DateAt(i int) (time.Time, bool) {
	if !s.HasTimeIndex() || i < 0 || i >= len(s.Dates) {
		return time.Time{}, false
	}
	return s.Dates[i], true
}

// Tail returns a new series holding the trailing n rows
func (s *Series) Tail(n int) *Series {
	frame := s.Frame.Tail(n)
	res := &Series{
		Ticker:     s.Ticker,
		Path:       s.Path,
		TimeColumn: s.TimeColumn,
		Columns:    s.Columns,
		Numeric:    s.Numeric,
		Frame:      frame,
	}

	if s.HasTimeIndex() {
		start := len(s.Dates) - frame.Len()
		res.Dates = make([]time.Time, frame.Len())
		copy(res.Dates, s.Dates[start:])
	}

	return res
}
