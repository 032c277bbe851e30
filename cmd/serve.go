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

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/penny-vault/pv-dashboard/data"
	"github.com/penny-vault/pv-dashboard/middleware"
	"github.com/penny-vault/pv-dashboard/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	viper.BindEnv("server.cors_origins", "PV_CORS_ORIGINS")
	serveCmd.Flags().String("cors-origins", "*", "Comma separated list of origins allowed to call the API")
	viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long:  `Run HTTP server that serves the dashboard datasets as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		manager := data.NewManager(viper.GetString("data.dir"))

		// files may be added after start up; until then the API answers 503
		if _, err := manager.Catalog(cmd.Context()); err != nil {
			if !errors.Is(err, data.ErrCatalogEmpty) {
				log.Fatal().Err(err).Msg("could not read data directory")
			}
			log.Error().Str("Dir", manager.Dir()).Msg(data.UserMessage(err))
		}
		log.Info().Str("Dir", manager.Dir()).Msg("initialized data manager")

		// Create new Fiber instance
		app := router.NewApp()

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("could not shutdown server")
			}
		}()

		// Configure CORS
		corsConfig := cors.Config{
			AllowOrigins: viper.GetString("server.cors_origins"),
			AllowHeaders: "*",
			AllowMethods: "GET,HEAD",
		}
		app.Use(cors.New(corsConfig))

		// Setup logging middleware
		app.Use(middleware.NewLogger())

		// Setup routes
		router.SetupRoutes(app, manager)

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	},
}
