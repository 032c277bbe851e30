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

package router

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-dashboard/common"
	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/handler"
)

// NewApp creates the fiber application used to serve the API
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               common.ProgramName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
}

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App, manager *data.Manager) {
	api := app.Group("/v1")
	api.Get("/", handler.Ping)

	h := handler.New(manager)

	// Tickers
	tickers := api.Group("/tickers")
	tickers.Get("/", h.ListTickers)
	tickers.Get("/:ticker", h.GetTicker)

	// Multi-ticker views
	api.Get("/comparison", h.GetComparison)
	api.Get("/correlation", h.GetCorrelation)
	api.Get("/summary", h.GetSummary)
	api.Get("/dashboard", h.GetDashboard)
}
