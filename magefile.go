//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "hanzicloze"

// Default target to run when none is specified
var Default = Build

// Build compiles the hanzicloze binary into ./bin
func Build() error {
	mg.Deps(Vet)
	return sh.RunV("go", "build", "-o", filepath.Join("bin", binary), "./cmd/hanzicloze")
}

// Test runs all package tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs hanzicloze into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/hanzicloze")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("bin")
}
