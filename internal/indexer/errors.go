package indexer

import (
	"errors"
	"fmt"
)

// slotError is the outcome of one pipeline step: the fault itself plus the
// retry decision as a first-class value. The retry controller maps permanent
// errors to an immediate stop; everything else is retried with backoff.
type slotError struct {
	err       error
	permanent bool
}

func (e *slotError) Error() string {
	return e.err.Error()
}

func (e *slotError) Unwrap() error {
	return e.err
}

func transientErr(err error) *slotError {
	return &slotError{err: err}
}

func permanentErr(err error) *slotError {
	return &slotError{err: err, permanent: true}
}

func permanentErrf(format string, args ...any) *slotError {
	return permanentErr(fmt.Errorf(format, args...))
}

// IsPermanent reports whether a slot processing error was a non-retryable
// data-integrity fault.
func IsPermanent(err error) bool {
	var se *slotError
	return errors.As(err, &se) && se.permanent
}
