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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-dashboard/data"
)

var _ = Describe("Headline metrics", func() {
	var dir string

	BeforeEach(func() {
		dir = newDataDir()
	})

	load := func(content string) *data.Series {
		path := writeFile(dir, "A_prices.csv", content)
		series, err := data.LoadSeries("A", path)
		Expect(err).To(BeNil())
		return series
	}

	Context("resolving the price column", func() {
		It("prefers Close", func() {
			col, err := data.ResolveCloseColumn(load("Date,Open,Close\n2023-01-02,1,2\n"))
			Expect(err).To(BeNil())
			Expect(col).To(Equal("Close"))
		})

		It("falls back to the first numeric column", func() {
			col, err := data.ResolveCloseColumn(load("Exchange,Price,Volume\nXAMS,5,100\nXAMS,6,200\n"))
			Expect(err).To(BeNil())
			Expect(col).To(Equal("Price"))
		})

		It("reports a series without numeric columns", func() {
			_, err := data.ResolveCloseColumn(load("Date,Exchange\n2023-01-02,XAMS\n"))
			Expect(errors.Is(err, data.ErrNoPriceColumn)).To(BeTrue())
		})

		It("selects a non-numeric Close column and fails the headline", func() {
			series := load("Date,Close,Volume\n2023-01-02,n.a.,100\n2023-01-03,3,200\n")
			col, err := data.ResolveCloseColumn(series)
			Expect(err).To(BeNil())
			Expect(col).To(Equal("Close"))

			_, err = data.ComputeHeadline(series, col)
			Expect(errors.Is(err, data.ErrNoPriceColumn)).To(BeTrue())
		})
	})

	Context("computing the headline", func() {
		It("uses the last two rows", func() {
			headline, err := data.ComputeHeadline(load(closeCSV(8, 10, 11)), "Close")
			Expect(err).To(BeNil())
			Expect(headline.CloseColumn).To(Equal("Close"))
			Expect(headline.LastClose).To(Equal(11.0))
			Expect(headline.PrevClose).To(Equal(10.0))
			Expect(headline.PctChange1D).To(BeNumerically("~", 10.0, 1e-9))
			Expect(headline.Rows).To(Equal(3))
		})

		It("reports no change for a single row", func() {
			headline, err := data.ComputeHeadline(load(closeCSV(42)), "Close")
			Expect(err).To(BeNil())
			Expect(headline.LastClose).To(Equal(42.0))
			Expect(headline.PrevClose).To(Equal(42.0))
			Expect(headline.PctChange1D).To(Equal(0.0))
			Expect(headline.Rows).To(Equal(1))
		})

		It("reports no change when the previous close is zero", func() {
			headline, err := data.ComputeHeadline(load(closeCSV(0, 5)), "Close")
			Expect(err).To(BeNil())
			Expect(headline.PctChange1D).To(Equal(0.0))
		})

		It("reports an empty series", func() {
			_, err := data.ComputeHeadline(load("Date,Close\n"), "Close")
			Expect(errors.Is(err, data.ErrSeriesEmpty)).To(BeTrue())
		})
	})
})
