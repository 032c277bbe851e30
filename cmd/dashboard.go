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
	"fmt"

	"github.com/penny-vault/pv-dashboard/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dashboardTicker string
	dashboardPeriod string
	dashboardWidth  int
)

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardTicker, "ticker", "t", "", "Ticker shown in the single ticker section (default first ticker)")
	dashboardCmd.Flags().StringVarP(&dashboardPeriod, "period", "P", "", "Period: 1mo, 3mo, 6mo, 1y, 5y or max")
	dashboardCmd.Flags().IntVar(&dashboardWidth, "width", 0, "Wrap styled output at this width")

	viper.BindEnv("report.style", "PV_REPORT_STYLE")
	dashboardCmd.Flags().String("style", "", "glamour style (dark, light, notty, ...); blank prints raw markdown")
	viper.BindPFlag("report.style", dashboardCmd.Flags().Lookup("style"))

	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard to the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		period := periodFlag(dashboardPeriod)
		manager, catalog := newManager(ctx)

		if dashboardTicker != "" {
			if _, err := catalog.Path(dashboardTicker); err != nil {
				halt(err)
			}
		}

		dashboard, err := manager.Dashboard(ctx, dashboardTicker, period)
		if err != nil {
			halt(err)
		}

		out, err := report.Render(dashboard, report.Options{
			Style: viper.GetString("report.style"),
			Width: dashboardWidth,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("could not render dashboard")
		}

		fmt.Print(out)
	},
}
