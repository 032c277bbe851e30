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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/penny-vault/pv-dashboard/dataframe"
	"github.com/rs/zerolog/log"
)

// LoadSummary reads the optional summary_metrics.csv in dir. The first column
// holds the row labels; every other column is passed through untouched. When
// the file does not exist ErrSummaryAbsent is returned.
func LoadSummary(dir string) (*Summary, error) {
	path := filepath.Join(dir, SummaryFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSummaryAbsent, dir)
	}

	header, rows, err := readCSV(path)
	if err != nil {
		log.Warn().Err(err).Str("Path", path).Msg("could not read summary metrics")
		return nil, fmt.Errorf("%w: %w", ErrSummaryInvalid, err)
	}

	summary := &Summary{
		Path:   path,
		Header: header,
		Labels: make([]string, len(rows)),
		Cells:  make([][]string, len(rows)),
	}

	for idx, row := range rows {
		summary.Labels[idx] = row[0]
		summary.Cells[idx] = row[1:]
	}

	summary.Frame = dataframe.New(summary.Labels)
	for colIdx := 1; colIdx < len(header); colIdx++ {
		if vals, ok := numericColumn(rows, colIdx); ok {
			summary.Frame.Insert(header[colIdx], vals)
		}
	}

	log.Debug().Str("Path", path).Int("NumRows", len(rows)).Int("NumColumns", len(header)-1).Msg("loaded summary metrics")
	return summary, nil
}
