//go:build mage

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

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "pvdash"
	modulePath = "github.com/penny-vault/pv-dashboard"
	coverFile  = "coverage.out"
)

// GOEXE overrides the go executable
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build compiles pvdash with the commit hash and build date stamped in
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(versionEnv(), goexe, "build", "-o", binaryName, "-ldflags", ldflags(), "-v", ".")
}

// Clean removes build and export artifacts
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{binaryName, coverFile, "export"} {
		os.RemoveAll(path)
	}
}

// Check formats, vets and runs the race tests
func Check() {
	mg.SerialDeps(Fmt, Vet, TestRace)
}

// Test runs the ginkgo suites of every package
func Test() error {
	fmt.Println("Go Test")
	return run(goexe, "test", "./...")
}

// TestRace runs the test suites with the race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return run(goexe, "test", "-race", "./...")
}

// Cover opens an html coverage report of the test suites
func Cover() error {
	if err := run(goexe, "test", "-coverprofile="+coverFile, "-covermode=count", "./..."); err != nil {
		return err
	}
	return sh.Run(goexe, "tool", "cover", "-html="+coverFile)
}

// Fmt fails when any go file is not gofmt'ed
func Fmt() error {
	fmt.Println("Go Format")

	// gofmt exits zero even when it lists files
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}

	var unformatted []string
	for _, file := range strings.Split(out, "\n") {
		if file != "" && !strings.HasPrefix(file, "_") {
			unformatted = append(unformatted, file)
		}
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("improperly formatted go files:\n%s", strings.Join(unformatted, "\n"))
	}
	return nil
}

// Vet runs go vet
func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

func ldflags() string {
	return fmt.Sprintf("-X %[1]s/common.commitHash=$COMMIT_HASH -X %[1]s/common.buildDate=$BUILD_DATE", modulePath)
}

func versionEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// run prints the command output only on failure unless mage runs verbose
func run(cmd string, args ...string) error {
	if mg.Verbose() {
		return sh.Run(cmd, args...)
	}
	out, err := sh.Output(cmd, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, out)
	}
	return err
}
