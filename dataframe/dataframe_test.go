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

package dataframe_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-dashboard/dataframe"
)

var _ = Describe("DataFrame", func() {
	Context("with no values", func() {
		var (
			df *dataframe.DataFrame[int]
		)

		BeforeEach(func() {
			df = &dataframe.DataFrame[int]{}
		})

		It("has zero length", func() {
			Expect(df.Len()).To(Equal(0))
		})

		It("has zero columns", func() {
			Expect(df.ColCount()).To(Equal(0))
		})

		It("does not error on breakout", func() {
			dfMap := df.Breakout()
			Expect(dfMap).To(HaveLen(0))
		})

		It("does not error on drop", func() {
			df = df.Drop(math.NaN())
			Expect(df.Len()).To(Equal(0))
		})

		It("does not error on tail", func() {
			Expect(df.Tail(5).Len()).To(Equal(0))
		})

		It("renders a placeholder table", func() {
			Expect(df.Table()).To(Equal("<NO DATA>"))
		})
	})

	Context("with 40 rows and two columns", func() {
		var (
			df *dataframe.DataFrame[int]
		)

		BeforeEach(func() {
			index := make([]int, 40)
			col1 := make([]float64, 40)
			col2 := make([]float64, 40)
			for idx := range index {
				index[idx] = idx
				col1[idx] = float64(idx)
				col2[idx] = float64(idx * 2)
			}
			df = dataframe.New(index)
			df.Insert("Close", col1)
			df.Insert("Volume", col2)
		})

		It("has length", func() {
			Expect(df.Len()).To(Equal(40))
			Expect(df.ColCount()).To(Equal(2))
		})

		It("finds columns by name", func() {
			Expect(df.ColIndex("Volume")).To(Equal(1))
			Expect(df.ColIndex("Open")).To(Equal(-1))

			col, err := df.Column("Close")
			Expect(err).To(BeNil())
			Expect(col[39]).To(Equal(39.0))

			_, err = df.Column("Open")
			Expect(err).To(MatchError(dataframe.ErrColumnNotFound))
		})

		It("panics when inserting a column of the wrong length", func() {
			Expect(func() { df.Insert("Bad", []float64{1}) }).To(Panic())
		})

		DescribeTable("tail returns a suffix", func(n, expectedLen, expectedFirst int) {
			tail := df.Tail(n)
			Expect(tail.Len()).To(Equal(expectedLen))
			if expectedLen > 0 {
				Expect(tail.Index[0]).To(Equal(expectedFirst))
				Expect(tail.Vals[0][0]).To(Equal(float64(expectedFirst)))
				Expect(tail.Index[tail.Len()-1]).To(Equal(39))
			}
		},
			Entry("shorter than frame", 5, 5, 35),
			Entry("equal to frame", 40, 40, 0),
			Entry("longer than frame", 93, 40, 0),
			Entry("zero rows", 0, 0, 0),
			Entry("negative rows", -3, 0, 0),
		)

		It("does not share memory with the tail", func() {
			tail := df.Tail(3)
			tail.Vals[0][0] = -1
			Expect(df.Vals[0][37]).To(Equal(37.0))
		})

		It("returns the last row", func() {
			last := df.Last()
			Expect(last.Len()).To(Equal(1))
			Expect(last.Vals[1][0]).To(Equal(78.0))
		})

		It("can remove all 0s with drop", func() {
			df = df.Drop(0)
			Expect(df.Len()).To(Equal(39))
			Expect(df.Vals[0][0]).To(BeNumerically("==", 1.0))
		})

		It("drops rows with NaN in any column", func() {
			df.Vals[1][3] = math.NaN()
			df.Vals[0][10] = math.NaN()
			df = df.Drop(math.NaN())
			Expect(df.Len()).To(Equal(38))
			Expect(df.Index).ToNot(ContainElement(3))
			Expect(df.Index).ToNot(ContainElement(10))
		})

		It("copies deeply", func() {
			df2 := df.Copy()
			df2.Vals[0][0] = 100
			df2.ColNames[0] = "Other"
			Expect(df.Vals[0][0]).To(Equal(0.0))
			Expect(df.ColNames[0]).To(Equal("Close"))
		})

		It("breaks out into single column frames", func() {
			dfMap := df.Breakout()
			Expect(dfMap.Keys()).To(Equal([]string{"Close", "Volume"}))
			Expect(dfMap["Volume"].ColNames).To(Equal([]string{"Volume"}))
		})

		It("renders a table", func() {
			table := df.Tail(2).Table()
			Expect(table).To(ContainSubstring("CLOSE"))
			Expect(table).To(ContainSubstring("39.0000"))
		})
	})

	Context("when aligning by trailing position", func() {
		It("pads shorter columns at the top", func() {
			a := dataframe.New([]int{0, 1, 2, 3})
			a.Insert("A", []float64{1, 2, 3, 4})
			b := dataframe.New([]int{0, 1})
			b.Insert("B", []float64{10, 20})

			merged := dataframe.Map[int]{"A": a, "B": b}.AlignTail("A", "B", "C")
			Expect(merged.Len()).To(Equal(4))
			Expect(merged.ColNames).To(Equal([]string{"A", "B"}))
			Expect(math.IsNaN(merged.Vals[1][0])).To(BeTrue())
			Expect(math.IsNaN(merged.Vals[1][1])).To(BeTrue())
			Expect(merged.Vals[1][2]).To(Equal(10.0))
			Expect(merged.Vals[1][3]).To(Equal(20.0))

			merged.Drop(math.NaN())
			Expect(merged.Len()).To(Equal(2))
		})

		It("returns an empty frame when nothing matches", func() {
			merged := dataframe.Map[int]{}.AlignTail("A")
			Expect(merged.Len()).To(Equal(0))
			Expect(merged.ColCount()).To(Equal(0))
		})
	})

	Context("with a date index", func() {
		It("formats dates in tables", func() {
			df := dataframe.New([]time.Time{time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)})
			df.Insert("Close", []float64{12.5})
			Expect(df.Table()).To(ContainSubstring("2023-03-01"))
		})

		It("formats each index kind", func() {
			Expect(dataframe.FormatIndex(7)).To(Equal("7"))
			Expect(dataframe.FormatIndex("ASML")).To(Equal("ASML"))
			Expect(dataframe.FormatIndex(time.Date(2022, 12, 30, 0, 0, 0, 0, time.UTC))).To(Equal("2022-12-30"))
			Expect(dataframe.FormatIndex(time.Date(2022, 12, 30, 9, 30, 0, 0, time.UTC))).To(Equal("2022-12-30 09:30:00"))
		})
	})
})
