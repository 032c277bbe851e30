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

// Package export writes the datasets of a render pass to parquet files in long
// format, one row per (ticker, row, column) value.
package export

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/dataframe"
	"github.com/penny-vault/pv-dashboard/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	PricesFile     = "prices.parquet"
	NormalizedFile = "normalized.parquet"
	ReturnsFile    = "returns.parquet"
)

// Record is a single value of a dataset. Missing values are not written.
type Record struct {
	Ticker string  `parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Row    int64   `parquet:"name=row, type=INT64, encoding=DELTA_BINARY_PACKED"`
	Date   string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Column string  `parquet:"name=column, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Value  float64 `parquet:"name=value, type=DOUBLE, encoding=PLAIN"`
}

// Result lists the files written and the number of records in each
type Result struct {
	Files   []string
	Records map[string]int
}

// Write exports the period-filtered prices of every ticker, the normalized
// comparison and the returns matrix to outDir
func Write(ctx context.Context, manager *data.Manager, period data.Period, outDir string) (*Result, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "export.Write")
	defer span.End()

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{
		Records: make(map[string]int, 3),
	}

	prices := make([]Record, 0, 1024)
	for _, ticker := range catalog.Names() {
		series, err := manager.Series(ctx, ticker)
		if err != nil {
			log.Warn().Err(err).Str("Ticker", ticker).Msg("excluding ticker from price export")
			continue
		}
		view := data.SelectPeriod(series, period)
		prices = appendFrame(prices, ticker, view.Frame, view.Dates)
	}

	comparison, err := manager.Comparison(ctx, period)
	if err != nil {
		return nil, err
	}
	normalized := make([]Record, 0, 1024)
	for _, ticker := range comparison.Tickers {
		normalized = appendFrame(normalized, ticker, comparison.Lines[ticker], comparison.Dates[ticker])
	}

	matrix, err := manager.Returns(ctx, period)
	if err != nil {
		return nil, err
	}
	returns := make([]Record, 0, 1024)
	for colIdx, ticker := range matrix.Frame.ColNames {
		col := dataframe.New(matrix.Frame.Index)
		col.Insert(data.CloseColumn, matrix.Frame.Vals[colIdx])
		returns = appendFrame(returns, ticker, col, matrix.Dates)
	}

	for _, dataset := range []struct {
		name    string
		records []Record
	}{
		{PricesFile, prices},
		{NormalizedFile, normalized},
		{ReturnsFile, returns},
	} {
		path := filepath.Join(outDir, dataset.name)
		if err := writeRecords(path, dataset.records); err != nil {
			span.RecordError(err)
			return nil, err
		}
		result.Files = append(result.Files, path)
		result.Records[dataset.name] = len(dataset.records)
		span.SetAttributes(attribute.Int(dataset.name, len(dataset.records)))
	}

	return result, nil
}

// appendFrame flattens df into records; dates align with the rows of df when present
func appendFrame(records []Record, ticker string, df *dataframe.DataFrame[int], dates []time.Time) []Record {
	for rowIdx, row := range df.Index {
		date := ""
		if rowIdx < len(dates) {
			date = dataframe.FormatTime(dates[rowIdx])
		}
		for colIdx, colName := range df.ColNames {
			v := df.Vals[colIdx][rowIdx]
			if math.IsNaN(v) {
				continue
			}
			records = append(records, Record{
				Ticker: ticker,
				Row:    int64(row),
				Date:   date,
				Column: colName,
				Value:  v,
			})
		}
	}
	return records
}

func writeRecords(path string, records []Record) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(Record), 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_GZIP

	for _, rec := range records {
		if err := pw.Write(rec); err != nil {
			return fmt.Errorf("failed to write parquet data: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	log.Info().Str("Path", path).Int("NumRecords", len(records)).Msg("wrote parquet file")
	return nil
}
