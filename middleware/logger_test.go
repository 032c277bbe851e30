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

package middleware_test

import (
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-dashboard/middleware"
)

var _ = Describe("Logger", func() {
	var app *fiber.App

	BeforeEach(func() {
		app = fiber.New()
		app.Use(middleware.NewLogger())
		app.Get("/ok", func(c *fiber.Ctx) error {
			return c.SendString(c.Locals(middleware.RequestIDLocal).(string))
		})
		app.Get("/fail", func(c *fiber.Ctx) error {
			return fiber.ErrTeapot
		})
	})

	It("assigns a request id", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get(fiber.HeaderXRequestID)).To(HaveLen(36))
	})

	It("keeps a request id supplied by the client", func() {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set(fiber.HeaderXRequestID, "abc-123")
		resp, err := app.Test(req)
		Expect(err).To(BeNil())
		Expect(resp.Header.Get(fiber.HeaderXRequestID)).To(Equal("abc-123"))
	})

	It("runs the error handler for failed requests", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusTeapot))
	})
})
