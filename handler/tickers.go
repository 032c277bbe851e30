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

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-dashboard/data"
)

// ListTickers returns the tickers found in the data directory and the selectable periods
func (api *API) ListTickers(c *fiber.Ctx) error {
	span := startSpan(c, "ListTickers")
	defer span.End()

	catalog, err := api.manager.Catalog(c.UserContext())
	if err != nil {
		return respondError(c, span, err)
	}

	periods := make([]string, len(data.Periods))
	for idx, p := range data.Periods {
		periods[idx] = p.String()
	}

	return c.JSON(TickerListResponse{
		Tickers:       catalog.Names(),
		Periods:       periods,
		DefaultPeriod: data.DefaultPeriod.String(),
	})
}

// GetTicker returns the headline metrics and the period-filtered rows of one ticker
func (api *API) GetTicker(c *fiber.Ctx) error {
	span := startSpan(c, "GetTicker")
	defer span.End()

	p, err := period(c)
	if err != nil {
		return respondError(c, span, err)
	}

	view, err := api.manager.TickerView(c.UserContext(), c.Params("ticker"), p)
	if err != nil {
		return respondError(c, span, err)
	}

	return c.JSON(newTickerResponse(view))
}
