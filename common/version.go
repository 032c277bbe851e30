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

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// ProgramName is the name of the command line binary
const ProgramName = "pvdash"

// set with -ldflags by the mage Build target
var (
	commitHash string
	buildDate  string
)

// Version is a SemVer 2.0.0 build version
type Version struct {
	Major int
	Minor int
	Patch int

	// Suffix marks a pre-release such as "dev"; empty for releases
	Suffix string
}

// CurrentVersion is the version of this build
var CurrentVersion = Version{
	Major:  1,
	Minor:  0,
	Patch:  0,
	Suffix: "dev",
}

// String formats v as MAJOR.MINOR.PATCH[-SUFFIX[+COMMIT]]
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix == "" {
		return s
	}
	s += "-" + v.Suffix
	if commitHash != "" {
		s += "+" + strings.ToLower(commitHash)
	}
	return s
}

// BuildVersionString is printed by "pvdash version"
func BuildVersionString() string {
	date := buildDate
	if date == "" {
		date = "unknown"
	}
	commit := commitHash
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf("%s v%s %s/%s\n\nBuild Date: %s\nCommit: %s\nBuilt with: %s",
		ProgramName, CurrentVersion, runtime.GOOS, runtime.GOARCH, date, commit, runtime.Version())
}

// Dependencies lists the modules compiled into the binary as path="version",
// sorted by path
func Dependencies() []string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	deps := make([]string, 0, len(info.Deps))
	for _, dep := range info.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}
	sort.Strings(deps)
	return deps
}

// DependencyString formats Dependencies for the version command
func DependencyString() string {
	return "Dependencies:\n\n" + strings.Join(Dependencies(), "\n")
}
