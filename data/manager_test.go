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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-dashboard/data"
)

var _ = Describe("Manager", func() {
	var (
		ctx     context.Context
		dir     string
		manager *data.Manager
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = newDataDir()
		manager = data.NewManager(dir)
	})

	Context("with an empty data directory", func() {
		It("halts the dashboard", func() {
			dashboard, err := manager.Dashboard(ctx, "", data.DefaultPeriod)
			Expect(errors.Is(err, data.ErrCatalogEmpty)).To(BeTrue())
			Expect(dashboard).To(BeNil())
		})

		It("picks up files added later", func() {
			_, err := manager.Catalog(ctx)
			Expect(errors.Is(err, data.ErrCatalogEmpty)).To(BeTrue())

			writeFile(dir, "ASML_prices.csv", closeCSV(1, 2))
			catalog, err := manager.Catalog(ctx)
			Expect(err).To(BeNil())
			Expect(catalog.Names()).To(Equal([]string{"ASML"}))
		})
	})

	Context("with price files", func() {
		BeforeEach(func() {
			writeFile(dir, "ASML_prices.csv", closeCSV(10, 11, 12.1, 11, 12, 13))
			writeFile(dir, "SHELL_prices.csv", closeCSV(20, 22, 24.2, 22, 24, 26))
			writeFile(dir, "INGA_prices.csv", closeCSV(5, 4.5, 4.05, 4.5, 4.1, 3.7))
		})

		It("reports the data directory", func() {
			Expect(manager.Dir()).To(Equal(dir))
		})

		It("memoizes parsed series", func() {
			first, err := manager.Series(ctx, "ASML")
			Expect(err).To(BeNil())
			second, err := manager.Series(ctx, "ASML")
			Expect(err).To(BeNil())
			Expect(second).To(BeIdenticalTo(first))
		})

		It("memoizes the catalog until the listing changes", func() {
			first, err := manager.Catalog(ctx)
			Expect(err).To(BeNil())
			second, err := manager.Catalog(ctx)
			Expect(err).To(BeNil())
			Expect(second).To(BeIdenticalTo(first))

			writeFile(dir, "NN_prices.csv", closeCSV(1, 2))
			third, err := manager.Catalog(ctx)
			Expect(err).To(BeNil())
			Expect(third.Names()).To(ContainElement("NN"))
		})

		It("does not memoize failures", func() {
			path := writeFile(dir, "BAD_prices.csv", "Date,Close\nsoon,1\n")
			_, err := manager.Series(ctx, "BAD")
			Expect(errors.Is(err, data.ErrInvalidTimestamp)).To(BeTrue())

			writeFile(dir, "BAD_prices.csv", closeCSV(1, 2))
			series, err := manager.Series(ctx, "BAD")
			Expect(err).To(BeNil())
			Expect(series.Path).To(Equal(path))
		})

		It("builds the single ticker view", func() {
			view, err := manager.TickerView(ctx, "SHELL", data.Max)
			Expect(err).To(BeNil())
			Expect(view.Ticker).To(Equal("SHELL"))
			Expect(view.Headline.LastClose).To(Equal(26.0))
			Expect(view.Headline.PrevClose).To(Equal(24.0))
			Expect(view.Headline.Rows).To(Equal(6))
			Expect(view.Series.Len()).To(Equal(6))
		})

		It("rejects unknown tickers", func() {
			_, err := manager.TickerView(ctx, "TSLA", data.Max)
			Expect(errors.Is(err, data.ErrUnknownTicker)).To(BeTrue())
		})

		It("builds every section of the dashboard", func() {
			dashboard, err := manager.Dashboard(ctx, "", data.DefaultPeriod)
			Expect(err).To(BeNil())
			Expect(dashboard.Ticker).To(Equal("ASML"))
			Expect(dashboard.Tickers).To(Equal([]string{"ASML", "INGA", "SHELL"}))
			Expect(dashboard.ViewErr).To(BeNil())
			Expect(dashboard.View.Headline.LastClose).To(Equal(13.0))
			Expect(dashboard.Comparison.Tickers).To(HaveLen(3))
			Expect(errors.Is(dashboard.SummaryErr, data.ErrSummaryAbsent)).To(BeTrue())
			Expect(dashboard.Summary).To(BeNil())
			Expect(dashboard.CorrelationErr).To(BeNil())
			Expect(dashboard.Correlation.Matrix.ColCount()).To(Equal(3))
		})

		It("returns the correlation and the returns it was computed from", func() {
			corr, matrix, err := manager.Correlation(ctx, data.Max)
			Expect(err).To(BeNil())
			Expect(corr.Rows).To(Equal(matrix.Frame.Len()))
		})

		It("loads the summary when present", func() {
			writeFile(dir, data.SummaryFileName, "Metric,ASML\nSharpe,1.1\n")
			summary, err := manager.Summary(ctx)
			Expect(err).To(BeNil())
			Expect(summary.Labels).To(Equal([]string{"Sharpe"}))
		})
	})

	Context("with a file lacking a usable price column", func() {
		BeforeEach(func() {
			writeFile(dir, "AAA_prices.csv", "Exchange,Name\nXAMS,foo\nXAMS,bar\n")
			writeFile(dir, "BBB_prices.csv", closeCSV(1, 2, 3))
			writeFile(dir, "CCC_prices.csv", "Date,Close\n")
		})

		It("records the section error and keeps the other sections", func() {
			dashboard, err := manager.Dashboard(ctx, "AAA", data.Max)
			Expect(err).To(BeNil())
			Expect(errors.Is(dashboard.ViewErr, data.ErrNoPriceColumn)).To(BeTrue())
			Expect(dashboard.View).To(BeNil())
			Expect(dashboard.Comparison.Tickers).To(Equal([]string{"BBB"}))
			Expect(errors.Is(dashboard.CorrelationErr, data.ErrInsufficientData)).To(BeTrue())
		})

		It("reports an empty series", func() {
			_, err := manager.TickerView(ctx, "CCC", data.Max)
			Expect(errors.Is(err, data.ErrSeriesEmpty)).To(BeTrue())
		})
	})
})
