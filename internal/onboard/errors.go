package onboard

import (
	"errors"
	"fmt"
)

// Reason classifies an onboarding failure. The set is closed: every
// failure surfaced by the pipeline carries exactly one of these values.
type Reason string

const (
	// ReasonConfig marks invalid configuration or conflicting inventory state.
	ReasonConfig Reason = "fail-config"
	// ReasonConnect marks an unreachable device or network-level failure.
	ReasonConnect Reason = "fail-connect"
	// ReasonExecute marks a command that failed on an authenticated session.
	ReasonExecute Reason = "fail-execute"
	// ReasonLogin marks credentials rejected by the device.
	ReasonLogin Reason = "fail-login"
	// ReasonGeneral marks any other unexpected failure.
	ReasonGeneral Reason = "fail-general"
)

// Error is the typed failure returned by every pipeline stage.
type Error struct {
	Reason  Reason
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error with a formatted message.
func Errorf(reason Reason, format string, args ...any) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// WrapErr builds an *Error that records err as the cause.
func WrapErr(reason Reason, err error, format string, args ...any) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...), Err: err}
}

// ReasonOf extracts the failure reason from err. Errors that did not
// originate as a typed onboarding failure report ReasonGeneral.
func ReasonOf(err error) Reason {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Reason
	}
	return ReasonGeneral
}

// asGeneral passes typed onboarding errors through unchanged and wraps
// everything else as ReasonGeneral. Used at inventory call sites where
// the store surfaces untyped transport errors.
func asGeneral(err error) error {
	var oe *Error
	if errors.As(err, &oe) {
		return err
	}
	return &Error{Reason: ReasonGeneral, Message: err.Error(), Err: err}
}
