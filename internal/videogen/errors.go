package videogen

import (
	"errors"

	"go.temporal.io/sdk/temporal"
)

// TerminalErrorType is the application error type attached to failures that
// retrying cannot fix. Retry policies list it as non-retryable.
const TerminalErrorType = "TerminalAPIError"

// TerminalError marks a failure that must not be retried, such as a rejected
// API key, a denied permission, or a malformed request. Activities convert
// it into a non-retryable application error so the engine fails the workflow
// immediately instead of burning attempts.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string { return e.Err.Error() }

func (e *TerminalError) Unwrap() error { return e.Err }

// Terminal wraps err as a TerminalError. Returns nil if err is nil.
func Terminal(err error) error {
	if err == nil {
		return nil
	}
	return &TerminalError{Err: err}
}

// asActivityError converts terminal failures into non-retryable application
// errors; anything else is returned unchanged for the engine to retry.
func asActivityError(err error) error {
	var terminal *TerminalError
	if errors.As(err, &terminal) {
		return temporal.NewNonRetryableApplicationError(terminal.Error(), TerminalErrorType, terminal.Err)
	}
	return err
}
