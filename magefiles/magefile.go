// Package main provides build targets for the trialcheck project using Mage.
//
// Usage:
//
//	mage build          Compile trialcheck binary to bin/
//	mage test           Run all tests
//	mage cover          Run tests with a coverage profile in bin/
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install trialcheck to GOPATH/bin
//	mage stats          Print Go lines of code per top-level directory
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "trialcheck"
	binaryDir  = "bin"
	cmdDir     = "./cmd/trialcheck"
	coverFile  = "bin/coverage.out"
)

// Build compiles the trialcheck binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs all tests and writes a coverage profile to bin/.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	if err := sh.RunV("go", "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Stats prints Go lines of code per top-level directory, split into
// production and test code.
func Stats() error {
	prod := map[string]int{}
	test := map[string]int{}

	for _, root := range []string{"cmd", "internal", "pkg"} {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || !strings.HasSuffix(path, ".go") {
				return nil
			}
			count, countErr := countLines(path)
			if countErr != nil {
				return nil
			}
			dir := filepath.Dir(path)
			if strings.HasSuffix(path, "_test.go") {
				test[dir] += count
			} else {
				prod[dir] += count
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	dirs := map[string]bool{}
	for d := range prod {
		dirs[d] = true
	}
	for d := range test {
		dirs[d] = true
	}
	keys := make([]string, 0, len(dirs))
	for d := range dirs {
		keys = append(keys, d)
	}
	slices.Sort(keys)

	var prodTotal, testTotal int
	for _, d := range keys {
		fmt.Printf("%-24s %6d prod %6d test\n", d, prod[d], test[d])
		prodTotal += prod[d]
		testTotal += test[d]
	}
	fmt.Printf("%-24s %6d prod %6d test\n", "total", prodTotal, testTotal)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
