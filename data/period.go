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
	"fmt"
	"strings"
)

// Period is the trailing window of rows used for every computation of a render pass
type Period int

const (
	OneMonth Period = iota
	ThreeMonths
	SixMonths
	OneYear
	FiveYears
	Max
)

// DefaultPeriod is selected when the user has not chosen one
const DefaultPeriod = SixMonths

// Periods lists every selectable period in display order
var Periods = []Period{OneMonth, ThreeMonths, SixMonths, OneYear, FiveYears, Max}

var periodRows = map[Period]int{
	OneMonth:    31,
	ThreeMonths: 93,
	SixMonths:   186,
	OneYear:     366,
	FiveYears:   5 * 366,
}

func (p Period) String() string {
	switch p {
	case OneMonth:
		return "1mo"
	case ThreeMonths:
		return "3mo"
	case SixMonths:
		return "6mo"
	case OneYear:
		return "1y"
	case FiveYears:
		return "5y"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// Rows returns the number of trailing rows selected by the period and false
// for Max, which selects every row
func (p Period) Rows() (int, bool) {
	n, ok := periodRows[p]
	return n, ok
}

// MarshalText implements encoding.TextMarshaler
func (p Period) MarshalText() ([]byte, error) {
	if p < OneMonth || p > Max {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPeriod, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePeriod converts the user-facing period name into a Period
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "1mo":
		return OneMonth, nil
	case "3mo":
		return ThreeMonths, nil
	case "6mo":
		return SixMonths, nil
	case "1y":
		return OneYear, nil
	case "5y":
		return FiveYears, nil
	case "max":
		return Max, nil
	default:
		return DefaultPeriod, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
	}
}

// SelectPeriod returns the trailing rows of the series selected by period. Max
// returns the series unchanged; a series shorter than the window is returned whole.
func SelectPeriod(series *Series, period Period) *Series {
	n, ok := period.Rows()
	if !ok {
		return series
	}
	return series.Tail(n)
}
