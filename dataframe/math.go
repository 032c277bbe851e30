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

package dataframe

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Corr computes the pairwise Pearson correlation between every column in df
// and returns a square dataframe whose index and columns are the column names.
// The result is symmetric and the diagonal is exactly 1.0.
func (df *DataFrame[T]) Corr() (*DataFrame[string], error) {
	if df.ColCount() < 2 {
		return nil, ErrInsufficientColumns
	}

	n := df.ColCount()
	names := make([]string, n)
	copy(names, df.ColNames)

	cols := make([]string, n)
	copy(cols, df.ColNames)

	corr := &DataFrame[string]{
		Index:    names,
		ColNames: cols,
		Vals:     make([][]float64, n),
	}
	for idx := range corr.Vals {
		corr.Vals[idx] = make([]float64, n)
	}

	for ii := 0; ii < n; ii++ {
		corr.Vals[ii][ii] = 1.0
		for jj := ii + 1; jj < n; jj++ {
			r := stat.Correlation(df.Vals[ii], df.Vals[jj], nil)
			corr.Vals[ii][jj] = r
			corr.Vals[jj][ii] = r
		}
	}

	return corr, nil
}

// DivScalar divides all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame[T]) DivScalar(scalar float64) *DataFrame[T] {
	return df.MulScalar(1.0 / scalar)
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame[T]) MulScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()
	for colIdx := range df.Vals {
		floats.Scale(scalar, df.Vals[colIdx])
	}
	return df
}

// Normalize rescales each column so that its first value equals base and
// returns a new dataframe. A column whose first value is zero yields ±Inf.
func (df *DataFrame[T]) Normalize(base float64) *DataFrame[T] {
	df = df.Copy()
	if df.Len() == 0 {
		return df
	}

	for colIdx, col := range df.Vals {
		first := col[0]
		for rowIdx := range col {
			df.Vals[colIdx][rowIdx] = col[rowIdx] / first * base
		}
		// guarantee the anchor is exact regardless of rounding
		if !math.IsNaN(first) && first != 0 {
			df.Vals[colIdx][0] = base
		}
	}

	return df
}

// PctChange computes the fractional change from the previous row for every
// column and returns a new dataframe. The first row is NaN, as is any row whose
// previous value is zero or NaN.
func (df *DataFrame[T]) PctChange() *DataFrame[T] {
	df2 := df.Copy()
	for colIdx, col := range df.Vals {
		for rowIdx := range col {
			if rowIdx == 0 {
				df2.Vals[colIdx][rowIdx] = math.NaN()
				continue
			}
			prev := col[rowIdx-1]
			if prev == 0 || math.IsNaN(prev) {
				df2.Vals[colIdx][rowIdx] = math.NaN()
				continue
			}
			df2.Vals[colIdx][rowIdx] = col[rowIdx]/prev - 1
		}
	}
	return df2
}
