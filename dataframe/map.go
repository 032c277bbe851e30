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
	"sort"
)

// Keys returns the names of all dataframes in the map in lexicographic order
func (dfMap Map[T]) Keys() []string {
	keys := make([]string, 0, len(dfMap))
	for k := range dfMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Drop calls dataframe.Drop on each dataframe in the map
func (dfMap Map[T]) Drop(val float64) Map[T] {
	for _, v := range dfMap {
		v.Drop(val)
	}
	return dfMap
}

// Tail calls dataframe.Tail on each dataframe in the map and returns a new map
func (dfMap Map[T]) Tail(n int) Map[T] {
	newDfMap := make(Map[T], len(dfMap))
	for k, v := range dfMap {
		newDfMap[k] = v.Tail(n)
	}
	return newDfMap
}

// AlignTail merges the first column of each named dataframe into a single
// dataframe, lining rows up by their position from the end so that the most
// recent rows coincide. Shorter columns are padded at the top with NaN. The
// index is taken from the longest dataframe. Names missing from the map are
// ignored.
func (dfMap Map[T]) AlignTail(keys ...string) *DataFrame[T] {
	var longest *DataFrame[T]
	for _, k := range keys {
		if df, ok := dfMap[k]; ok && (longest == nil || df.Len() > longest.Len()) {
			longest = df
		}
	}

	if longest == nil {
		return New[T]([]T{})
	}

	n := longest.Len()
	index := make([]T, n)
	copy(index, longest.Index)
	res := New(index)

	for _, k := range keys {
		df, ok := dfMap[k]
		if !ok || df.ColCount() == 0 {
			continue
		}
		col := make([]float64, n)
		offset := n - df.Len()
		for ii := 0; ii < offset; ii++ {
			col[ii] = math.NaN()
		}
		copy(col[offset:], df.Vals[0])
		res.Insert(k, col)
	}

	return res
}
