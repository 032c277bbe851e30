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
	"context"
	"fmt"
	"math"
	"time"

	"github.com/penny-vault/pv-dashboard/dataframe"
	"github.com/rs/zerolog/log"
)

// SeriesSource provides parsed price series by ticker name
type SeriesSource interface {
	Series(ctx context.Context, ticker string) (*Series, error)
}

// FileSource loads series straight from the catalog's files without memoization
type FileSource struct {
	Catalog *Catalog
}

// Series implements SeriesSource
func (src FileSource) Series(_ context.Context, ticker string) (*Series, error) {
	path, err := src.Catalog.Path(ticker)
	if err != nil {
		return nil, err
	}
	return LoadSeries(ticker, path)
}

// windowed loads ticker and applies the period filter; tickers with fewer than
// MinSeriesRows rows in the window are rejected with ErrTooFewRows
func windowed(ctx context.Context, src SeriesSource, ticker string, period Period) (*Series, error) {
	series, err := src.Series(ctx, ticker)
	if err != nil {
		return nil, err
	}

	view := SelectPeriod(series, period)
	if view.Len() < MinSeriesRows {
		return nil, fmt.Errorf("%w: %s has %d", ErrTooFewRows, ticker, view.Len())
	}

	return view, nil
}

// BuildNormalizedComparison rescales the close of every ticker in the catalog to
// NormalizedBase at the first row of its own window. Tickers that fail to load,
// have fewer than two rows or have no usable first close are skipped.
func BuildNormalizedComparison(ctx context.Context, src SeriesSource, catalog *Catalog, period Period) *Comparison {
	comparison := &Comparison{
		Period:  period,
		Tickers: make([]string, 0, catalog.Len()),
		Lines:   make(dataframe.Map[int], catalog.Len()),
		Dates:   make(map[string][]time.Time, catalog.Len()),
		Skipped: make(map[string]error),
	}

	for _, ticker := range catalog.Names() {
		subLog := log.With().Str("Ticker", ticker).Str("Period", period.String()).Logger()

		view, err := windowed(ctx, src, ticker, period)
		if err != nil {
			subLog.Warn().Err(err).Msg("excluding ticker from normalized comparison")
			comparison.Skipped[ticker] = err
			continue
		}

		col, err := ResolveCloseColumn(view)
		if err != nil {
			subLog.Warn().Err(err).Msg("excluding ticker from normalized comparison")
			comparison.Skipped[ticker] = err
			continue
		}

		vals, err := view.Frame.Column(col)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrNoPriceColumn, err)
			subLog.Warn().Err(err).Msg("excluding ticker from normalized comparison")
			comparison.Skipped[ticker] = err
			continue
		}

		if vals[0] == 0 || math.IsNaN(vals[0]) {
			err = fmt.Errorf("%w: %s", ErrInvalidBase, ticker)
			subLog.Warn().Err(err).Msg("excluding ticker from normalized comparison")
			comparison.Skipped[ticker] = err
			continue
		}

		line := dataframe.New(view.Frame.Index)
		line.Insert(ticker, vals)

		comparison.Tickers = append(comparison.Tickers, ticker)
		comparison.Lines[ticker] = line.Normalize(NormalizedBase)
		comparison.Dates[ticker] = view.Dates
	}

	return comparison
}

// BuildReturnsMatrix computes the daily fractional change of the literal Close
// column for every ticker in the catalog. Columns are aligned by row position
// counted from the most recent row, then rows with a missing value in any
// column are dropped. Tickers without a Close column are excluded.
func BuildReturnsMatrix(ctx context.Context, src SeriesSource, catalog *Catalog, period Period) *ReturnsMatrix {
	matrix := &ReturnsMatrix{
		Period:  period,
		Skipped: make(map[string]error),
	}

	returns := make(dataframe.Map[int], catalog.Len())
	contributing := make([]string, 0, catalog.Len())
	var longest *Series

	for _, ticker := range catalog.Names() {
		subLog := log.With().Str("Ticker", ticker).Str("Period", period.String()).Logger()

		view, err := windowed(ctx, src, ticker, period)
		if err != nil {
			subLog.Warn().Err(err).Msg("excluding ticker from returns matrix")
			matrix.Skipped[ticker] = err
			continue
		}

		closes, err := view.Frame.Column(CloseColumn)
		if err != nil {
			err = fmt.Errorf("%w: %s", ErrMissingClose, ticker)
			subLog.Warn().Err(err).Msg("excluding ticker from returns matrix")
			matrix.Skipped[ticker] = err
			continue
		}

		closeDf := dataframe.New(view.Frame.Index)
		closeDf.Insert(ticker, closes)
		returns[ticker] = closeDf.PctChange()
		contributing = append(contributing, ticker)

		if longest == nil || view.Len() > longest.Len() {
			longest = view
		}
	}

	aligned := returns.AlignTail(contributing...)

	// re-key rows by their aligned position so positions are comparable across tickers
	var dates map[int]time.Time
	if longest != nil && longest.HasTimeIndex() {
		dates = make(map[int]time.Time, aligned.Len())
	}
	for idx := range aligned.Index {
		aligned.Index[idx] = idx
		if dates != nil {
			dates[idx] = longest.Dates[idx]
		}
	}

	aligned.Drop(math.NaN())
	matrix.Frame = aligned

	if dates != nil {
		matrix.Dates = make([]time.Time, aligned.Len())
		for idx, pos := range aligned.Index {
			matrix.Dates[idx] = dates[pos]
		}
	}

	return matrix
}

// ComputeCorrelation computes the pairwise Pearson correlation of the returns
// matrix. At least MinCorrelationColumns columns and MinCorrelationRows rows are
// required, otherwise ErrInsufficientData is returned.
func ComputeCorrelation(matrix *ReturnsMatrix) (*Correlation, error) {
	if matrix.Frame.ColCount() < MinCorrelationColumns || matrix.Frame.Len() < MinCorrelationRows {
		return nil, fmt.Errorf("%w: %d columns, %d rows", ErrInsufficientData, matrix.Frame.ColCount(), matrix.Frame.Len())
	}

	corr, err := matrix.Frame.Corr()
	if err != nil {
		return nil, err
	}

	return &Correlation{
		Period: matrix.Period,
		Matrix: corr,
		Rows:   matrix.Frame.Len(),
	}, nil
}
