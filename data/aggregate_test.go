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

package data_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-dashboard/data"
)

var _ = Describe("Aggregations", func() {
	var (
		ctx context.Context
		dir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = newDataDir()
	})

	source := func() (data.FileSource, *data.Catalog) {
		catalog, err := data.DiscoverTickers(dir)
		Expect(err).To(BeNil())
		return data.FileSource{Catalog: catalog}, catalog
	}

	Context("with three well formed tickers", func() {
		BeforeEach(func() {
			writeFile(dir, "ASML_prices.csv", closeCSV(10, 11, 12.1, 11, 12, 13))
			writeFile(dir, "SHELL_prices.csv", closeCSV(20, 22, 24.2, 22, 24, 26))
			writeFile(dir, "INGA_prices.csv", closeCSV(5, 4.5, 4.05, 4.5, 4.1, 3.7))
		})

		It("normalizes every ticker to 100 at the start of the window", func() {
			src, catalog := source()
			comparison := data.BuildNormalizedComparison(ctx, src, catalog, data.Max)
			Expect(comparison.Tickers).To(Equal([]string{"ASML", "INGA", "SHELL"}))
			Expect(comparison.Skipped).To(BeEmpty())

			asml := comparison.Lines["ASML"]
			Expect(asml.ColNames).To(Equal([]string{"ASML"}))
			Expect(asml.Vals[0][0]).To(Equal(100.0))
			Expect(asml.Vals[0][1]).To(BeNumerically("~", 110.0, 1e-9))
			Expect(asml.Vals[0][2]).To(BeNumerically("~", 121.0, 1e-9))
			Expect(comparison.Dates["ASML"]).To(HaveLen(6))

			inga := comparison.Lines["INGA"]
			Expect(inga.Vals[0][0]).To(Equal(100.0))
			Expect(inga.Vals[0][1]).To(BeNumerically("~", 90.0, 1e-9))
		})

		It("normalizes at the start of the selected period", func() {
			writeFile(dir, "LONG_prices.csv", priceCSV(40, 1, 1))
			src, catalog := source()
			comparison := data.BuildNormalizedComparison(ctx, src, catalog, data.OneMonth)

			long := comparison.Lines["LONG"]
			Expect(long.Len()).To(Equal(31))
			Expect(long.Vals[0][0]).To(Equal(100.0))
			// first close in window is 10, last is 40
			Expect(long.Vals[0][30]).To(BeNumerically("~", 400.0, 1e-9))
		})

		It("computes aligned daily returns", func() {
			src, catalog := source()
			matrix := data.BuildReturnsMatrix(ctx, src, catalog, data.Max)
			Expect(matrix.Skipped).To(BeEmpty())
			Expect(matrix.Frame.ColNames).To(Equal([]string{"ASML", "INGA", "SHELL"}))
			Expect(matrix.Frame.Len()).To(Equal(5))
			Expect(matrix.Frame.Index).To(Equal([]int{1, 2, 3, 4, 5}))
			Expect(matrix.Frame.Vals[0][0]).To(BeNumerically("~", 0.1, 1e-9))
			Expect(matrix.Frame.Vals[1][0]).To(BeNumerically("~", -0.1, 1e-9))
			Expect(matrix.Dates).To(HaveLen(5))
			Expect(matrix.Dates[0]).To(Equal(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)))
		})

		It("computes the correlation matrix", func() {
			src, catalog := source()
			corr, err := data.ComputeCorrelation(data.BuildReturnsMatrix(ctx, src, catalog, data.Max))
			Expect(err).To(BeNil())
			Expect(corr.Rows).To(Equal(5))
			Expect(corr.Matrix.Index).To(Equal([]string{"ASML", "INGA", "SHELL"}))
			Expect(corr.Matrix.ColNames).To(Equal([]string{"ASML", "INGA", "SHELL"}))

			for ii := 0; ii < 3; ii++ {
				Expect(corr.Matrix.Vals[ii][ii]).To(Equal(1.0))
				for jj := 0; jj < 3; jj++ {
					Expect(corr.Matrix.Vals[ii][jj]).To(BeNumerically("~", corr.Matrix.Vals[jj][ii], 1e-12))
				}
			}

			// ASML and SHELL move in lockstep
			Expect(corr.Matrix.Vals[0][2]).To(BeNumerically("~", 1.0, 1e-9))
			Expect(corr.Matrix.Vals[0][1]).To(BeNumerically("<", 0))
		})
	})

	Context("with a long and a short ticker", func() {
		BeforeEach(func() {
			writeFile(dir, "AAA_prices.csv", priceCSV(30, 10, 1))
			writeFile(dir, "BBB_prices.csv", priceCSV(3, 50, 1))
		})

		It("includes both in the comparison", func() {
			src, catalog := source()
			comparison := data.BuildNormalizedComparison(ctx, src, catalog, data.OneMonth)
			Expect(comparison.Tickers).To(Equal([]string{"AAA", "BBB"}))
			Expect(comparison.Lines["AAA"].Len()).To(Equal(30))
			Expect(comparison.Lines["BBB"].Len()).To(Equal(3))
		})

		It("aligns the most recent rows and reports too little data", func() {
			src, catalog := source()
			matrix := data.BuildReturnsMatrix(ctx, src, catalog, data.OneMonth)
			Expect(matrix.Frame.ColCount()).To(Equal(2))
			Expect(matrix.Frame.Len()).To(Equal(2))
			Expect(matrix.Dates[1]).To(Equal(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)))

			_, err := data.ComputeCorrelation(matrix)
			Expect(errors.Is(err, data.ErrInsufficientData)).To(BeTrue())
		})
	})

	Context("with tickers that cannot be used", func() {
		BeforeEach(func() {
			writeFile(dir, "GOOD_prices.csv", closeCSV(10, 11, 12, 13, 14, 15))
			writeFile(dir, "ONE_prices.csv", closeCSV(10))
			writeFile(dir, "ZERO_prices.csv", closeCSV(0, 1, 2))
			writeFile(dir, "BROKEN_prices.csv", "Date,Close\nnot-a-date,1\n")
			writeFile(dir, "PRICE_prices.csv", "Price,Volume\n5,100\n6,200\n7,300\n")
		})

		It("skips them in the comparison", func() {
			src, catalog := source()
			comparison := data.BuildNormalizedComparison(ctx, src, catalog, data.Max)
			Expect(comparison.Tickers).To(Equal([]string{"GOOD", "PRICE"}))
			Expect(errors.Is(comparison.Skipped["ONE"], data.ErrTooFewRows)).To(BeTrue())
			Expect(errors.Is(comparison.Skipped["ZERO"], data.ErrInvalidBase)).To(BeTrue())
			Expect(errors.Is(comparison.Skipped["BROKEN"], data.ErrInvalidTimestamp)).To(BeTrue())

			price := comparison.Lines["PRICE"]
			Expect(price.Vals[0][0]).To(Equal(100.0))
			Expect(price.Vals[0][2]).To(BeNumerically("~", 140.0, 1e-9))
			Expect(comparison.Dates["PRICE"]).To(BeNil())
		})

		It("excludes tickers without a Close column from the returns", func() {
			src, catalog := source()
			matrix := data.BuildReturnsMatrix(ctx, src, catalog, data.Max)
			Expect(matrix.Frame.ColNames).To(Equal([]string{"GOOD", "ZERO"}))
			Expect(errors.Is(matrix.Skipped["PRICE"], data.ErrMissingClose)).To(BeTrue())
			Expect(errors.Is(matrix.Skipped["ONE"], data.ErrTooFewRows)).To(BeTrue())

			// ZERO's first return divides by zero and drops that row
			Expect(matrix.Frame.Len()).To(Equal(1))

			_, err := data.ComputeCorrelation(matrix)
			Expect(errors.Is(err, data.ErrInsufficientData)).To(BeTrue())
		})
	})

	It("returns an empty matrix when no ticker has a Close column", func() {
		writeFile(dir, "PRICE_prices.csv", "Price\n5\n6\n")
		src, catalog := source()
		matrix := data.BuildReturnsMatrix(ctx, src, catalog, data.Max)
		Expect(matrix.Frame.ColCount()).To(Equal(0))
		Expect(matrix.Frame.Len()).To(Equal(0))

		_, err := data.ComputeCorrelation(matrix)
		Expect(errors.Is(err, data.ErrInsufficientData)).To(BeTrue())
	})
})
