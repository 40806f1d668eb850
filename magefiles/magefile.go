//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target runs the full check pipeline
var Default = Check

// Build compiles the charla binary
func Build() error {
	fmt.Println("Building charla...")
	return sh.RunV("go", "build", "-o", "charla", "./cmd/charla")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and tests, then builds
func Check() error {
	mg.SerialDeps(Vet, Test, Build)
	return nil
}

// Install installs charla into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/charla")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("charla")
}
