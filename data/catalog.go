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
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

// Catalog maps ticker names to their price file. Names are derived by
// stripping PriceFileSuffix from each file name and are ordered by file name.
type Catalog struct {
	Dir      string
	Snapshot string
	names    []string
	paths    map[string]string
}

// DiscoverTickers lists every *_prices.csv file in dir. An empty catalog is
// terminal for the session and is reported as ErrCatalogEmpty.
func DiscoverTickers(dir string) (*Catalog, error) {
	entries, err := priceFiles(dir)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Dir:      dir,
		Snapshot: snapshotDigest(entries),
		names:    make([]string, 0, len(entries)),
		paths:    make(map[string]string, len(entries)),
	}

	for _, entry := range entries {
		name := strings.TrimSuffix(entry.name, PriceFileSuffix)
		catalog.names = append(catalog.names, name)
		catalog.paths[name] = filepath.Join(dir, entry.name)
	}

	if len(catalog.names) == 0 {
		return catalog, fmt.Errorf("%w: %s", ErrCatalogEmpty, dir)
	}

	log.Debug().Str("Dir", dir).Int("NumTickers", len(catalog.names)).Str("Snapshot", catalog.Snapshot).Msg("discovered tickers")
	return catalog, nil
}

// Snapshot computes the digest of the price files currently in dir; it
// changes whenever a price file is added, removed, resized or touched
func Snapshot(dir string) (string, error) {
	entries, err := priceFiles(dir)
	if err != nil {
		return "", err
	}
	return snapshotDigest(entries), nil
}

// Names returns the ticker names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of tickers in the catalog
func (c *Catalog) Len() int {
	return len(c.names)
}

// Path returns the price file of ticker
func (c *Catalog) Path(ticker string) (string, error) {
	if p, ok := c.paths[ticker]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
}

// priceFile is a directory entry resolved through any symlink
type priceFile struct {
	name string
	info fs.FileInfo
}

// priceFiles returns the files in dir matching *_prices.csv sorted by name.
// Symlinks are followed; directories and dangling links are skipped. A file
// named exactly PriceFileSuffix has no ticker name and is ignored.
func priceFiles(dir string) ([]priceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list data directory: %w", err)
	}

	matches := make([]priceFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, PriceFileSuffix) {
			continue
		}
		if name == PriceFileSuffix {
			log.Warn().Str("Dir", dir).Str("File", name).Msg("ignoring price file without ticker name")
			continue
		}

		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("Dir", dir).Str("File", name).Msg("ignoring unreadable price file")
			continue
		}
		if info.IsDir() {
			continue
		}

		matches = append(matches, priceFile{name: name, info: info})
	}

	return matches, nil
}

func snapshotDigest(entries []priceFile) string {
	hasher := blake3.New()
	for _, entry := range entries {
		fmt.Fprintf(hasher, "%s\x00%d\x00%d\n", entry.name, entry.info.Size(), entry.info.ModTime().UnixNano())
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
