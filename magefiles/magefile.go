// Copyright (c) 2026 PuzzleQuest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for puzzlequest using Mage.
//
// Usage:
//
//	mage build       Compile the puzzlequest binary to bin/
//	mage play        Build and start the game against a scratch data dir
//	mage test:all    Run every test
//	mage test:race   Run every test with the race detector
//	mage test:cover  Write coverage.out and print a per-function summary
//	mage lint        Run golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install puzzlequest to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "puzzlequest"
	binaryDir  = "bin"
	cmdDir     = "./cmd/puzzlequest"
	scratchDir = ".puzzlequest-dev"
	versionVar = "github.com/mesh-intelligence/puzzlequest/internal/cli.Version"
)

// Build compiles the puzzlequest binary to bin/. PUZZLEQUEST_VERSION, when
// set, is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("PUZZLEQUEST_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Play builds the binary and runs the game with config and saves kept in a
// scratch directory.
func Play() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName),
		"--config-dir", filepath.Join(scratchDir, "config"),
		"--data-dir", filepath.Join(scratchDir, "data"),
		"play")
}

// Clean removes build artifacts and the scratch directory.
func Clean() error {
	for _, dir := range []string{binaryDir, scratchDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
