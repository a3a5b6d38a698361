package cmd

import (
	"errors"

	"github.com/MehmetMelik/steq/packages/auth"
	"github.com/MehmetMelik/steq/packages/export"
)

// Exit codes for steq CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure indicates validation found invalid documents or unresolved variables
	ExitFailure = 1

	// ExitParseError indicates a request document or curl command could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates a configuration or variable source error
	ExitConfigError = 3

	// ExitAuthError indicates auth could not be written into the request
	ExitAuthError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps a command error onto a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, export.ErrUnknownFormat):
		return ExitUsageError
	case errors.Is(err, auth.ErrRequiresHandshake):
		return ExitAuthError
	}
	return ExitFailure
}
