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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/penny-vault/pv-dashboard/data"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// newManager creates a data manager for the configured data directory and
// halts when the directory has no price files
func newManager(ctx context.Context) (*data.Manager, *data.Catalog) {
	manager := data.NewManager(viper.GetString("data.dir"))
	catalog, err := manager.Catalog(ctx)
	if err != nil {
		halt(err)
	}
	return manager, catalog
}

// periodFlag returns the period named on the command line, or the configured
// default period when none was given
func periodFlag(name string) data.Period {
	if name == "" {
		name = viper.GetString("data.default_period")
	}
	p, err := data.ParsePeriod(name)
	if err != nil {
		halt(err)
	}
	return p
}

// halt prints the user facing message for err and exits
func halt(err error) {
	log.Error().Err(err).Str("Dir", viper.GetString("data.dir")).Msg("stopping")
	msg := data.UserMessage(err)
	if errors.Is(err, data.ErrCatalogEmpty) {
		msg = fmt.Sprintf("%s (%s)", msg, viper.GetString("data.dir"))
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
