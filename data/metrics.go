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
	"errors"
	"fmt"

	"github.com/penny-vault/pv-dashboard/dataframe"
)

// ComputeHeadline derives the last close, the day-over-day percent change and
// the row count of a period-filtered series. With a single row the previous
// close equals the last close; a previous close of exactly zero yields a 0%
// change.
func ComputeHeadline(view *Series, closeCol string) (*Headline, error) {
	if view.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeriesEmpty, view.Ticker)
	}

	vals, err := view.Frame.Column(closeCol)
	if err != nil {
		if errors.Is(err, dataframe.ErrColumnNotFound) {
			return nil, fmt.Errorf("%w: column %q of %s is not numeric", ErrNoPriceColumn, closeCol, view.Ticker)
		}
		return nil, err
	}

	n := len(vals)
	last := vals[n-1]
	prev := last
	if n > 1 {
		prev = vals[n-2]
	}

	pct := 0.0
	if prev != 0 {
		pct = (last/prev - 1) * 100
	}

	return &Headline{
		CloseColumn: closeCol,
		LastClose:   last,
		PrevClose:   prev,
		PctChange1D: pct,
		Rows:        n,
	}, nil
}
