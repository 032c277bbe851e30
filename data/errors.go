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

import "errors"

var (
	ErrCatalogEmpty     = errors.New("no *_prices.csv files found in data directory")
	ErrUnknownTicker    = errors.New("ticker not found in catalog")
	ErrUnknownPeriod    = errors.New("unknown period")
	ErrEmptyFile        = errors.New("file has no header row")
	ErrMalformedRow     = errors.New("malformed row")
	ErrInvalidTimestamp = errors.New("could not parse timestamp")
	ErrSeriesEmpty      = errors.New("series contains no data")
	ErrNoPriceColumn    = errors.New("no price column found (expected 'Close')")
	ErrMissingClose     = errors.New("series has no 'Close' column")
	ErrTooFewRows       = errors.New("series has fewer than 2 rows in period")
	ErrInvalidBase      = errors.New("first close in period is zero or missing")
	ErrInsufficientData = errors.New("too little data or columns to compute correlation")
	ErrSummaryAbsent    = errors.New("summary_metrics.csv not found")
	ErrSummaryInvalid   = errors.New("summary_metrics.csv could not be read")
)

// UserMessage returns the text shown in place of a section that could not be
// rendered
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrCatalogEmpty):
		return "No *_prices.csv files found in the data directory."
	case errors.Is(err, ErrSummaryInvalid):
		return "summary_metrics.csv could not be read; summary table not available."
	case errors.Is(err, ErrSeriesEmpty):
		return "The selected ticker has no data."
	case errors.Is(err, ErrNoPriceColumn):
		return "No price column found (expected 'Close')."
	case errors.Is(err, ErrInsufficientData):
		return "Not enough data to compute correlations (need at least 2 tickers with 5 overlapping days)."
	case errors.Is(err, ErrSummaryAbsent):
		return "No summary_metrics.csv found; summary table not available."
	case errors.Is(err, ErrUnknownTicker):
		return "Unknown ticker."
	case errors.Is(err, ErrInvalidTimestamp):
		return "The price file of the selected ticker has a timestamp that could not be parsed."
	case errors.Is(err, ErrMalformedRow), errors.Is(err, ErrEmptyFile):
		return "The price file of the selected ticker is malformed."
	default:
		return err.Error()
	}
}
