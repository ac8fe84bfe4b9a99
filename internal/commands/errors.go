package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// ErrorMapping tags errors matching Target (errors.Is) with a category and
// text code.
type ErrorMapping struct {
	Target   error
	Category goerrors.Category
	Code     string
	Message  string
}

// Classify wraps err with the first matching mapping, or with the fallback
// code under CategoryInternal. Errors already carrying a category pass
// through unchanged.
func Classify(err error, fallbackCode string, mappings ...ErrorMapping) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	for _, mapping := range mappings {
		if mapping.Target != nil && errors.Is(err, mapping.Target) {
			message := mapping.Message
			if message == "" {
				message = err.Error()
			}
			return goerrors.Wrap(err, mapping.Category, message).WithTextCode(mapping.Code)
		}
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).WithTextCode(fallbackCode)
}

// TextCode returns the go-errors text code attached to err, if any.
func TextCode(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
