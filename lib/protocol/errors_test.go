// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorEnvelopeError(t *testing.T) {
	e := NewError(CodeNotFound, "window not found")
	if got := e.Error(); got != "not-found: window not found" {
		t.Errorf("Error() = %q", got)
	}
	withDetails := e.WithDetails("no window titled \"Untitled\"")
	if got := withDetails.Error(); got != `not-found: window not found (no window titled "Untitled")` {
		t.Errorf("Error() with details = %q", got)
	}
	// WithDetails must not mutate the original.
	if e.Details != "" {
		t.Error("WithDetails mutated the receiver")
	}
}

func TestAsEnvelope(t *testing.T) {
	inner := Errorf(CodeTimeout, "capture timed out after %dms", 500)
	wrapped := fmt.Errorf("calling provider: %w", inner)

	envelope, ok := AsEnvelope(wrapped)
	if !ok {
		t.Fatal("AsEnvelope failed to find envelope in chain")
	}
	if envelope.Code != CodeTimeout {
		t.Errorf("code = %s, want timeout", envelope.Code)
	}

	if _, ok := AsEnvelope(errors.New("plain")); ok {
		t.Error("AsEnvelope found an envelope in a plain error")
	}
}

func TestWrapInternal(t *testing.T) {
	// Envelope passes through verbatim, even when wrapped.
	original := NewError(CodePermissionDenied, "accessibility not granted")
	if got := WrapInternal(fmt.Errorf("dispatch: %w", original)); got != original {
		t.Errorf("WrapInternal rewrapped an envelope: %v", got)
	}

	// Anything else becomes internal-error with details preserved.
	wrapped := WrapInternal(errors.New("connection reset by peer"))
	if wrapped.Code != CodeInternalError {
		t.Errorf("code = %s, want internal-error", wrapped.Code)
	}
	if wrapped.Details != "connection reset by peer" {
		t.Errorf("details = %q", wrapped.Details)
	}
}
