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

import "fmt"

// columnPredicate reports whether col of series can serve as the price column
type columnPredicate func(series *Series, col string) bool

// closeColumnPredicates are tried in order; the first predicate that matches
// any column (scanned in column order) selects it
var closeColumnPredicates = []columnPredicate{
	func(_ *Series, col string) bool { return col == CloseColumn },
	func(series *Series, col string) bool { return series.Numeric[col] },
}

// ResolveCloseColumn returns "Close" when present, otherwise the first numeric
// column in column order. ErrNoPriceColumn is returned when neither exists.
func ResolveCloseColumn(series *Series) (string, error) {
	for _, predicate := range closeColumnPredicates {
		for _, col := range series.Columns {
			if predicate(series, col) {
				return col, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoPriceColumn, series.Ticker)
}
