//go:build mage

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
	modulePath = "github.com/dkoosis/commentcheck"
	binPath    = "./bin/commentcheck"
)

// Default target - build the binary
var Default = Build

// Build builds the commentcheck binary
func Build() error {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	date := time.Now().UTC().Format(time.RFC3339)

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, version, commit, date)

	if err := os.MkdirAll("bin", 0o750); err != nil {
		return err
	}
	fmt.Println("Building commentcheck...")
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/commentcheck")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Comments checks this repository's own comment ratio
func Comments() error {
	mg.Deps(Build)
	return sh.RunV(binPath, ".")
}

// QA runs vet, tests, and the comment gate
func QA() {
	mg.SerialDeps(Vet, Test, Comments)
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
