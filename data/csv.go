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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// cells treated as missing values when parsing numeric columns
var naValues = map[string]bool{
	"":        true,
	"NA":      true,
	"N/A":     true,
	"n/a":     true,
	"NaN":     true,
	"nan":     true,
	"-NaN":    true,
	"-nan":    true,
	"null":    true,
	"NULL":    true,
	"None":    true,
	"#N/A":    true,
	"<NA>":    true,
	"#NA":     true,
	"1.#QNAN": true,
}

// timestamp layouts tried in order when parsing the time column
var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
}

// readCSV reads a comma separated file with a header row. Short rows are padded
// with empty cells; rows longer than the header are rejected.
func readCSV(path string) ([]string, [][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: could not read header of %s: %w", ErrMalformedRow, path, err)
	}

	// strip a UTF-8 byte order mark from the first header cell
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := make([][]string, 0, 256)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: could not read %s: %w", ErrMalformedRow, path, err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("%w: %s line %d has %d fields, header has %d", ErrMalformedRow, path, line, len(record), len(header))
		}

		for len(record) < len(header) {
			record = append(record, "")
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

// parseFloat converts a cell to float64; missing values become NaN
func parseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if naValues[cell] {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, true
}

func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, cell)
}
