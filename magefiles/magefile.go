//go:build mage

// Package main provides build targets for the basket project using Mage.
//
// Usage:
//
//	mage build        Compile basket binary to bin/
//	mage test:all     Run all tests
//	mage test:unit    Run tests quietly
//	mage test:race    Run tests with the race detector
//	mage test:cover   Run tests and write coverage.out
//	mage lint         Run golangci-lint
//	mage clean        Remove build artifacts
//	mage install      Install basket to GOPATH/bin
package main
