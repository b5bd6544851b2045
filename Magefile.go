//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace
type Test mg.Namespace
type Run mg.Namespace
type Gen mg.Namespace

var archTargets = map[string]map[string]string{
	"darwin_amd64": {
		"CGO_ENABLED": "0",
		"GO111MODULE": "on",
		"GOARCH":      "amd64",
		"GOOS":        "darwin",
	},
	"darwin_arm64": {
		"CGO_ENABLED": "0",
		"GO111MODULE": "on",
		"GOARCH":      "arm64",
		"GOOS":        "darwin",
	},
	"linux_amd64": {
		"CGO_ENABLED": "0",
		"GO111MODULE": "on",
		"GOARCH":      "amd64",
		"GOOS":        "linux",
	},
}

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build.Local

func currentArch() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

func buildCommand(command string, arch string) error {
	env, ok := archTargets[arch]
	if !ok {
		return fmt.Errorf("unknown arch %s", arch)
	}
	log.Printf("Building %s/%s\n", arch, command)
	outDir := fmt.Sprintf("./bin/%s/%s", arch, command)
	cmdDir := fmt.Sprintf("./cmd/%s", command)
	if err := sh.RunWith(env, "go", "build", "-o", outDir, cmdDir); err != nil {
		return err
	}

	// intentionally igores errors
	sh.RunV("chmod", "+x", outDir)
	return nil
}

func svgSizeCheckCmdDarwin() error {
	return buildCommand("svgsizecheck", "darwin_arm64")
}

func svgSizeCheckCmdLinux() error {
	return buildCommand("svgsizecheck", "linux_amd64")
}

func svgSizeCheckCmdLocal() error {
	return buildCommand("svgsizecheck", currentArch())
}

func testVerbose() error {
	os.Setenv("GO111MODULE", "on")
	os.Setenv("CGO_ENABLED", "0")
	return sh.RunV("go", "test", "-v", "./pkg/...")
}

func test() error {
	os.Setenv("GO111MODULE", "on")
	os.Setenv("CGO_ENABLED", "0")
	return sh.RunV("go", "test", "./pkg/...")
}

// Formats the source files
func (Build) Format() error {
	return sh.RunV("gofmt", "-w", "./pkg", "./cmd")
}

// Minimal build
func (Build) Local(ctx context.Context) {
	mg.SerialDeps(
		Clean,
		svgSizeCheckCmdLocal,
	)
}

// Lint/Format/Test/Build
func (Build) CI(ctx context.Context) {
	mg.SerialDeps(
		Build.Lint,
		Build.Format,
		Test.Verbose,
		Clean,
		svgSizeCheckCmdLinux,
	)
}

func (Build) All(ctx context.Context) {
	mg.SerialDeps(
		Build.Lint,
		Build.Format,
		Test.Verbose,
		svgSizeCheckCmdLinux,
		svgSizeCheckCmdDarwin,
	)
}

// Run linter against codebase
func (Build) Lint() error {
	os.Setenv("GO111MODULE", "on")
	log.Printf("Linting...")
	return sh.RunV("golangci-lint", "--timeout", "3m", "run", "-v", "./pkg/...", "./cmd/...")
}

// Run tests in verbose mode
func (Test) Verbose() error {
	return testVerbose()
}

// Run tests in normal mode
func (Test) Default() error {
	return test()
}

// Removes built files
func Clean() {
	log.Printf("Cleaning all")
	for arch := range archTargets {
		os.RemoveAll("./bin/" + arch)
	}
}

// Build and check a local directory, zip file or url
func (Run) Local(ctx context.Context, target string) error {
	mg.Deps(Build.Local)
	return sh.RunV("./bin/"+currentArch()+"/svgsizecheck", target)
}

// Readme re-generates the "Analyzers" table in README.md.
func (Gen) Readme() error {
	return sh.RunV("go", "run", "./cmd/genreadme")
}
