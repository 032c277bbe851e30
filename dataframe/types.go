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
	"errors"
	"time"
)

// Index is the set of types a DataFrame may be keyed by: the row position in
// the source file, a row label, or a timestamp
type Index interface {
	int | string | time.Time
}

// DataFrame stores a table of values organized by an index
// the vals array is column major - e.g.,
// ASML  SHELL
// 1     4
// 2     5
// 3     6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
type DataFrame[T Index] struct {
	Index    []T
	ColNames []string
	Vals     [][]float64
}

// Map is a collection of named dataframes
type Map[T Index] map[string]*DataFrame[T]

var (
	ErrColumnNotFound      = errors.New("column not found")
	ErrIndexNotAligned     = errors.New("index does not align")
	ErrInsufficientColumns = errors.New("at least two columns are required")
)
