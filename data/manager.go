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
	"errors"
	"path/filepath"

	"github.com/penny-vault/pv-dashboard/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Manager is the entry point for rendering collaborators. It owns the data
// directory and memoizes parsed files for the life of the process; every
// derived dataset is recomputed on each call.
type Manager struct {
	dir       string
	catalogs  *memo[*Catalog]
	series    *memo[*Series]
	summaries *memo[*Summary]
}

// Dashboard holds every section of a single render pass. A section that could
// not be produced carries its error instead of its data; only an empty catalog
// prevents a dashboard from being built.
type Dashboard struct {
	Period  Period
	Tickers []string
	Ticker  string

	View    *TickerView
	ViewErr error

	Comparison *Comparison

	Summary    *Summary
	SummaryErr error

	Returns        *ReturnsMatrix
	Correlation    *Correlation
	CorrelationErr error
}

// NewManager creates a manager reading price files from dir
func NewManager(dir string) *Manager {
	return &Manager{
		dir:       dir,
		catalogs:  newMemo[*Catalog]("catalog"),
		series:    newMemo[*Series]("series"),
		summaries: newMemo[*Summary]("summary"),
	}
}

// Dir returns the data directory
func (manager *Manager) Dir() string {
	return manager.dir
}

// Catalog discovers the tickers in the data directory. The result is memoized
// by directory snapshot.
func (manager *Manager) Catalog(ctx context.Context) (*Catalog, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Catalog")
	defer span.End()

	snapshot, err := Snapshot(manager.dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not list data directory")
		return nil, err
	}

	catalog, err := manager.catalogs.Get(manager.dir+"@"+snapshot, func() (*Catalog, error) {
		return DiscoverTickers(manager.dir)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return nil, err
	}

	span.SetAttributes(attribute.Int("tickers", catalog.Len()))
	return catalog, nil
}

// Series returns the full parsed series of ticker, memoized by file path
func (manager *Manager) Series(ctx context.Context, ticker string) (*Series, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Series")
	defer span.End()

	span.SetAttributes(attribute.String("ticker", ticker))

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	path, err := catalog.Path(ticker)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown ticker")
		return nil, err
	}

	series, err := manager.series.Get(path, func() (*Series, error) {
		return LoadSeries(ticker, path)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not load series")
		return nil, err
	}

	return series, nil
}

// TickerView loads ticker, filters it by period and computes its headline
// metrics. A file with no rows yields ErrSeriesEmpty and a file without a usable
// price column yields ErrNoPriceColumn.
func (manager *Manager) TickerView(ctx context.Context, ticker string, period Period) (*TickerView, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.TickerView")
	defer span.End()

	subLog := log.With().Str("Ticker", ticker).Str("Period", period.String()).Logger()

	series, err := manager.Series(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if series.Len() == 0 {
		subLog.Warn().Msg("price file contains no data")
		span.SetStatus(codes.Error, "series empty")
		return nil, ErrSeriesEmpty
	}

	col, err := ResolveCloseColumn(series)
	if err != nil {
		subLog.Error().Err(err).Msg("no price column")
		span.RecordError(err)
		span.SetStatus(codes.Error, "no price column")
		return nil, err
	}

	view := SelectPeriod(series, period)
	headline, err := ComputeHeadline(view, col)
	if err != nil {
		subLog.Error().Err(err).Msg("could not compute headline metrics")
		span.RecordError(err)
		span.SetStatus(codes.Error, "headline failed")
		return nil, err
	}

	return &TickerView{
		Ticker:   ticker,
		Period:   period,
		Headline: headline,
		Series:   view,
	}, nil
}

// Comparison builds the normalized comparison of every ticker in the catalog
func (manager *Manager) Comparison(ctx context.Context, period Period) (*Comparison, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Comparison")
	defer span.End()

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	comparison := BuildNormalizedComparison(ctx, manager, catalog, period)
	span.SetAttributes(attribute.Int("included", len(comparison.Tickers)), attribute.Int("skipped", len(comparison.Skipped)))
	return comparison, nil
}

// Returns builds the daily returns matrix of every ticker in the catalog
func (manager *Manager) Returns(ctx context.Context, period Period) (*ReturnsMatrix, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Returns")
	defer span.End()

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	matrix := BuildReturnsMatrix(ctx, manager, catalog, period)
	span.SetAttributes(attribute.Int("columns", matrix.Frame.ColCount()), attribute.Int("rows", matrix.Frame.Len()))
	return matrix, nil
}

// Correlation builds the returns matrix and its correlation. The returns
// matrix is returned even when there is too little data to correlate.
func (manager *Manager) Correlation(ctx context.Context, period Period) (*Correlation, *ReturnsMatrix, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Correlation")
	defer span.End()

	matrix, err := manager.Returns(ctx, period)
	if err != nil {
		return nil, nil, err
	}

	corr, err := ComputeCorrelation(matrix)
	if err != nil {
		log.Info().Err(err).Str("Period", period.String()).Msg("correlation not available")
		return nil, matrix, err
	}

	return corr, matrix, nil
}

// Summary returns the optional summary metrics table
func (manager *Manager) Summary(ctx context.Context) (*Summary, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Summary")
	defer span.End()

	path := filepath.Join(manager.dir, SummaryFileName)
	summary, err := manager.summaries.Get(path, func() (*Summary, error) {
		return LoadSummary(manager.dir)
	})
	if err != nil && !errors.Is(err, ErrSummaryAbsent) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not load summary")
	}

	return summary, err
}

// Dashboard performs one render pass: the selected ticker's view, the
// normalized comparison, the summary table and the correlation matrix. An
// empty ticker selects the first ticker in the catalog. Failures of a single
// section are recorded on the dashboard and never abort the other sections.
func (manager *Manager) Dashboard(ctx context.Context, ticker string, period Period) (*Dashboard, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "data.Dashboard")
	defer span.End()

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		log.Error().Err(err).Str("Dir", manager.dir).Msg("no price files found")
		return nil, err
	}

	if ticker == "" {
		ticker = catalog.Names()[0]
	}

	dashboard := &Dashboard{
		Period:  period,
		Tickers: catalog.Names(),
		Ticker:  ticker,
	}

	dashboard.View, dashboard.ViewErr = manager.TickerView(ctx, ticker, period)
	dashboard.Comparison = BuildNormalizedComparison(ctx, manager, catalog, period)
	dashboard.Summary, dashboard.SummaryErr = manager.Summary(ctx)

	dashboard.Returns = BuildReturnsMatrix(ctx, manager, catalog, period)
	dashboard.Correlation, dashboard.CorrelationErr = ComputeCorrelation(dashboard.Returns)

	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("period", period.String()))
	return dashboard, nil
}
