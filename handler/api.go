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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// API serves the dashboard datasets computed by a data.Manager
type API struct {
	manager *data.Manager
}

// New creates the API handlers for manager
func New(manager *data.Manager) *API {
	return &API{manager: manager}
}

func Ping(c *fiber.Ctx) error {
	var response PingResponse
	now, err := time.Now().MarshalText()
	if err != nil {
		log.Error().Err(err).Msg("error while getting time in ping")
		response = PingResponse{
			Status:  "error",
			Message: err.Error(),
			Time:    string(now),
		}
	} else {
		response = PingResponse{
			Status:  "success",
			Message: "API is alive",
			Time:    string(now),
		}
	}
	return c.JSON(response)
}

// startSpan opens a handler span carrying the request attributes
func startSpan(c *fiber.Ctx, name string) trace.Span {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), name)
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)
	c.SetUserContext(ctx)
	return span
}

// period reads the period query parameter, falling back to data.default_period
func period(c *fiber.Ctx) (data.Period, error) {
	p := c.Query("period")
	if p == "" {
		p = viper.GetString("data.default_period")
	}
	if p == "" {
		return data.DefaultPeriod, nil
	}
	return data.ParsePeriod(p)
}

// statusCode maps data errors to the HTTP status returned to the client
func statusCode(err error) int {
	switch {
	case errors.Is(err, data.ErrUnknownPeriod):
		return fiber.StatusBadRequest
	case errors.Is(err, data.ErrUnknownTicker):
		return fiber.StatusNotFound
	case errors.Is(err, data.ErrSeriesEmpty), errors.Is(err, data.ErrNoPriceColumn),
		errors.Is(err, data.ErrEmptyFile), errors.Is(err, data.ErrMalformedRow),
		errors.Is(err, data.ErrInvalidTimestamp):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, data.ErrCatalogEmpty):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a MessageResponse with the mapped status code
func respondError(c *fiber.Ctx, span trace.Span, err error) error {
	code := statusCode(err)
	if code >= fiber.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	message := data.UserMessage(err)
	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("Path", c.Path()).Msg("request failed")
		message = "internal server error"
	}

	return c.Status(code).JSON(MessageResponse{
		Status:  "error",
		Message: message,
	})
}
