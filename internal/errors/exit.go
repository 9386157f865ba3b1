package errors

import (
	"context"
	stderrors "errors"
)

// Process exit codes returned by the command
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode maps a run error to a process exit code. Cancellation (Ctrl-C or
// SIGTERM) maps to ExitInterrupted; every other error is ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}

// Title returns a short human-readable heading for err, used in front of the
// full error text on the console.
func Title(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return "Run cancelled"
	}

	switch TypeOf(err) {
	case ErrTypeNotFound:
		return "Input not found"
	case ErrTypeParsing:
		return "Input could not be parsed"
	case ErrTypeValidation:
		return "Invalid file"
	case ErrTypePermission:
		return "Permission denied"
	case ErrTypeExport:
		return "Export failed"
	case ErrTypeStorage:
		return "Storage error"
	case ErrTypeConfig:
		return "Invalid configuration"
	default:
		return "Cleaning failed"
	}
}
