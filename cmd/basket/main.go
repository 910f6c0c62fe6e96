// Package main provides the basket CLI, a command-line front end to the cart
// store.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cliError carries the exit code for an error returned by a command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(err error) error { return &cliError{code: exitUserError, err: err} }

// sysError marks err as an environment or storage failure.
func sysError(err error) error { return &cliError{code: exitSysError, err: err} }

// exitCode maps an error from Execute to a process exit code. Errors that
// were not classified come from flag parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "basket:", err)
		os.Exit(exitCode(err))
	}
}
