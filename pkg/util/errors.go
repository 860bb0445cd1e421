// Package util provides logging, error types, and address helpers shared by
// the virtnode CLI packages.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural precondition failures. These abort the
// whole provisioning run; everything else is a warning and the run continues.
var (
	ErrUnsupportedOS       = errors.New("host is not a supported Debian system")
	ErrUnsupportedCodename = errors.New("unsupported Debian release codename")
	ErrNoPrimaryInterface  = errors.New("no primary static interface found")
)

// FatalError marks a precondition failure that must stop the run. The
// provisioner aborts on the first FatalError; plain errors from shell-outs
// and best-effort file operations are logged and swallowed.
type FatalError struct {
	Check   string
	Details string
	Err     error
}

func (e *FatalError) Error() string {
	msg := fmt.Sprintf("%s check failed: %v", e.Check, e.Err)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// NewFatalError wraps a sentinel error with check context
func NewFatalError(check string, err error, details string) *FatalError {
	return &FatalError{Check: check, Details: details, Err: err}
}

// IsFatal reports whether err should abort the provisioning run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var fe *FatalError
	return errors.As(err, &fe)
}

// StepError records a non-fatal failure of one provisioning step so the
// caller can report it without stopping the sequence.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
