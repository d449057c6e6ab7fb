// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds of context creation. Use errors.Is to test for them.
var (
	ErrLoaderFailure              = errors.New("vulkan loader failure")
	ErrValidationLayerUnavailable = errors.New("validation layer requested but not supported")
	ErrExtensionUnavailable       = errors.New("instance extension requested but not supported")
	ErrNoSuitableDevice           = errors.New("failed to find suitable physical device")
	ErrNativeCall                 = errors.New("native call failed")
	ErrInvalidState               = errors.New("context is not in the required state")
)

// SuitabilityError is the reason a physical device was rejected.
// It only eliminates one candidate, selection carries on.
type SuitabilityError struct {
	Reason string
}

func (e *SuitabilityError) Error() string {
	return e.Reason
}

func unsuitable(format string, args ...interface{}) error {
	return &SuitabilityError{Reason: fmt.Sprintf(format, args...)}
}

// kindError tags a cause with one of the error kinds above while
// keeping the cause's message and chain.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.cause.Error() }

func (e *kindError) Unwrap() error { return e.cause }

func (e *kindError) Is(target error) bool { return target == e.kind }

func withKind(err, kind error) error {
	return &kindError{kind: kind, cause: err}
}

// nativeError wraps a failed native call with the name of the call.
func nativeError(err error, call string) error {
	return withKind(errors.Wrap(err, call), ErrNativeCall)
}

// IsSuitabilityError reports whether err rejects a single device.
func IsSuitabilityError(err error) bool {
	var se *SuitabilityError
	return errors.As(err, &se)
}
