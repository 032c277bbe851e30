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

package data_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// newDataDir creates an empty temporary data directory that is removed when
// the current test finishes
func newDataDir() string {
	dir, err := os.MkdirTemp("", "pv-dashboard-data")
	Expect(err).To(BeNil())
	DeferCleanup(os.RemoveAll, dir)
	return dir
}

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}

// priceCSV produces a daily Date,Open,Close,Volume file with n rows where Close
// starts at start and grows by step each row
func priceCSV(n int, start, step float64) string {
	var sb strings.Builder
	sb.WriteString("Date,Open,Close,Volume\n")
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for ii := 0; ii < n; ii++ {
		closePrice := start + float64(ii)*step
		fmt.Fprintf(&sb, "%s,%g,%g,%d\n", day.AddDate(0, 0, ii).Format("2006-01-02"), closePrice-0.5, closePrice, 1000+ii)
	}
	return sb.String()
}

// closeCSV produces a Date,Close file from the given closes
func closeCSV(closes ...float64) string {
	var sb strings.Builder
	sb.WriteString("Date,Close\n")
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for ii, c := range closes {
		fmt.Fprintf(&sb, "%s,%g\n", day.AddDate(0, 0, ii).Format("2006-01-02"), c)
	}
	return sb.String()
}
