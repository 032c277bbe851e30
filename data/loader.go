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
	"errors"
	"fmt"
	"time"

	"github.com/penny-vault/pv-dashboard/dataframe"
	"github.com/rs/zerolog/log"
)

// LoadSeries reads the price file at path fully into memory. The time column is
// the first of TimeColumns present in the header; without one the series is
// indexed by row position. A column is numeric when every cell is either a
// number or a missing value.
func LoadSeries(ticker, path string) (*Series, error) {
	subLog := log.With().Str("Ticker", ticker).Str("Path", path).Logger()

	header, rows, err := readCSV(path)
	if errors.Is(err, ErrEmptyFile) {
		subLog.Warn().Err(err).Msg("price file is empty")
		return nil, fmt.Errorf("%w: %w", ErrSeriesEmpty, err)
	}
	if err != nil {
		subLog.Warn().Err(err).Msg("could not read price file")
		return nil, err
	}

	series := &Series{
		Ticker:  ticker,
		Path:    path,
		Columns: make([]string, 0, len(header)),
		Numeric: make(map[string]bool, len(header)),
	}

	timeIdx := -1
	for _, name := range TimeColumns {
		for idx, col := range header {
			if col == name {
				timeIdx = idx
				break
			}
		}
		if timeIdx != -1 {
			series.TimeColumn = name
			break
		}
	}

	if timeIdx != -1 {
		series.Dates = make([]time.Time, len(rows))
		for rowIdx, row := range rows {
			ts, err := parseTimestamp(row[timeIdx])
			if err != nil {
				subLog.Warn().Err(err).Int("Row", rowIdx+1).Msg("could not parse time column")
				return nil, fmt.Errorf("%s row %d: %w", path, rowIdx+1, err)
			}
			series.Dates[rowIdx] = ts
		}
	}

	index := make([]int, len(rows))
	for idx := range index {
		index[idx] = idx
	}
	series.Frame = dataframe.New(index)

	for colIdx, colName := range header {
		if colIdx == timeIdx {
			continue
		}

		series.Columns = append(series.Columns, colName)
		vals, ok := numericColumn(rows, colIdx)
		if !ok {
			continue
		}

		// duplicate header names keep the first occurrence
		if series.Numeric[colName] {
			continue
		}
		series.Numeric[colName] = true
		series.Frame.Insert(colName, vals)
	}

	subLog.Debug().Int("NumRows", series.Len()).Str("TimeColumn", series.TimeColumn).Strs("Columns", series.Columns).Msg("loaded price series")
	return series, nil
}

func numericColumn(rows [][]string, colIdx int) ([]float64, bool) {
	vals := make([]float64, len(rows))
	for rowIdx, row := range rows {
		v, ok := parseFloat(row[colIdx])
		if !ok {
			return nil, false
		}
		vals[rowIdx] = v
	}
	return vals, true
}
