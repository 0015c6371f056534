//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "localtranslator"
	mainPkg    = "./cmd/localtranslator"
)

// Default target when running plain mage
var Default = Build

// Build compiles the localtranslator binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, mainPkg)
}

// Test runs all package tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint when it is installed, go vet otherwise
func Lint() error {
	if _, err := sh.Exec(nil, nil, nil, "golangci-lint", "version"); err != nil {
		fmt.Println("golangci-lint not found, falling back to go vet")
		return Vet()
	}
	return sh.RunV("golangci-lint", "run")
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(home, "go", "bin", binaryName)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return sh.Copy(dest, binaryName)
}

// Run builds and starts the GUI
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./" + binaryName)
}

// Serve builds and starts the translation API
func Serve() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "serve")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binaryName)
}
