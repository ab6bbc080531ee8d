// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable failure vocabulary shared by both sides of
// the connection. Codes are part of the wire contract: clients branch
// on them (retry on server-busy, prompt for a grant on
// permission-denied, re-handshake on version-mismatch), so existing
// values never change meaning.
type ErrorCode string

const (
	// CodePermissionDenied: the host OS has not granted the permission
	// the operation requires (screen recording, accessibility, or
	// scripting / automation control).
	CodePermissionDenied ErrorCode = "permission-denied"

	// CodeNotFound: the target of the operation (window, application,
	// element, session) does not exist.
	CodeNotFound ErrorCode = "not-found"

	// CodeTimeout: the operation did not complete in the time the
	// provider allowed for it.
	CodeTimeout ErrorCode = "timeout"

	// CodeInvalidRequest: the request decoded but its contents are
	// unusable, or a reply arrived with an unexpected shape.
	CodeInvalidRequest ErrorCode = "invalid-request"

	// CodeOperationNotSupported: the operation is outside the server's
	// configured allowlist, or this host has no implementation for it.
	CodeOperationNotSupported ErrorCode = "operation-not-supported"

	// CodeServerBusy: the server refused the request under load.
	CodeServerBusy ErrorCode = "server-busy"

	// CodeVersionMismatch: handshake failed because the requested
	// protocol version shares no overlap with the supported range.
	CodeVersionMismatch ErrorCode = "version-mismatch"

	// CodeUnauthorizedClient: the connecting client's identity failed
	// the bundle or team allowlist, or its claimed PID contradicts the
	// kernel-reported peer credentials.
	CodeUnauthorizedClient ErrorCode = "unauthorized-client"

	// CodeDecodingFailed: the raw bytes could not be decoded into a
	// protocol message.
	CodeDecodingFailed ErrorCode = "decoding-failed"

	// CodeInternalError: the provider failed in a way it did not
	// classify. The original error text travels in Details.
	CodeInternalError ErrorCode = "internal-error"
)

// ErrorEnvelope is the only error representation that crosses the
// client/agent boundary. It is both a transportable value (CBOR field
// of the error response variant) and an ordinary Go error, so a
// server-side return and a client-side errors.As use the same
// vocabulary.
type ErrorEnvelope struct {
	Code    ErrorCode `cbor:"code"`
	Message string    `cbor:"message"`
	Details string    `cbor:"details,omitempty"`
}

// NewError constructs an envelope with the given code and message.
func NewError(code ErrorCode, message string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: code, Message: message}
}

// Errorf constructs an envelope with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *ErrorEnvelope {
	return &ErrorEnvelope{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns a copy of the envelope carrying supplementary
// detail text (stack context, underlying error strings).
func (e *ErrorEnvelope) WithDetails(details string) *ErrorEnvelope {
	clone := *e
	clone.Details = details
	return &clone
}

// Error implements the error interface.
func (e *ErrorEnvelope) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsEnvelope extracts an ErrorEnvelope from err's chain. The second
// return is false when err carries no envelope.
func AsEnvelope(err error) (*ErrorEnvelope, bool) {
	var envelope *ErrorEnvelope
	if errors.As(err, &envelope) {
		return envelope, true
	}
	return nil, false
}

// WrapInternal converts an arbitrary provider error into an envelope.
// An error that already is (or wraps) an envelope passes through
// verbatim; anything else becomes internal-error with the error text
// preserved as details.
func WrapInternal(err error) *ErrorEnvelope {
	if envelope, ok := AsEnvelope(err); ok {
		return envelope
	}
	return &ErrorEnvelope{
		Code:    CodeInternalError,
		Message: "operation failed",
		Details: err.Error(),
	}
}
