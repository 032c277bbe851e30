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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-dashboard/data"
)

// GetComparison returns every ticker's close normalized to 100 at the start of the period
func (api *API) GetComparison(c *fiber.Ctx) error {
	span := startSpan(c, "GetComparison")
	defer span.End()

	p, err := period(c)
	if err != nil {
		return respondError(c, span, err)
	}

	comparison, err := api.manager.Comparison(c.UserContext(), p)
	if err != nil {
		return respondError(c, span, err)
	}

	return c.JSON(newComparisonResponse(comparison))
}

// GetCorrelation returns the correlation of daily returns. When there is too
// little data the response carries a message instead of a matrix.
func (api *API) GetCorrelation(c *fiber.Ctx) error {
	span := startSpan(c, "GetCorrelation")
	defer span.End()

	p, err := period(c)
	if err != nil {
		return respondError(c, span, err)
	}

	corr, matrix, err := api.manager.Correlation(c.UserContext(), p)
	if err != nil && !errors.Is(err, data.ErrInsufficientData) {
		return respondError(c, span, err)
	}

	return c.JSON(newCorrelationResponse(p, corr, matrix, err))
}

// GetSummary returns the precomputed summary table or a message when it is absent
func (api *API) GetSummary(c *fiber.Ctx) error {
	span := startSpan(c, "GetSummary")
	defer span.End()

	summary, err := api.manager.Summary(c.UserContext())
	return c.JSON(newSummaryResponse(summary, err))
}

// GetDashboard returns every section of one render pass
func (api *API) GetDashboard(c *fiber.Ctx) error {
	span := startSpan(c, "GetDashboard")
	defer span.End()

	p, err := period(c)
	if err != nil {
		return respondError(c, span, err)
	}

	dashboard, err := api.manager.Dashboard(c.UserContext(), c.Query("ticker"), p)
	if err != nil {
		return respondError(c, span, err)
	}

	resp := DashboardResponse{
		Period:      dashboard.Period.String(),
		Tickers:     dashboard.Tickers,
		Ticker:      dashboard.Ticker,
		Comparison:  newComparisonResponse(dashboard.Comparison),
		Summary:     newSummaryResponse(dashboard.Summary, dashboard.SummaryErr),
		Correlation: newCorrelationResponse(dashboard.Period, dashboard.Correlation, dashboard.Returns, dashboard.CorrelationErr),
	}

	if dashboard.ViewErr != nil {
		resp.ViewMessage = data.UserMessage(dashboard.ViewErr)
	} else {
		resp.View = newTickerResponse(dashboard.View)
	}

	return c.JSON(resp)
}
