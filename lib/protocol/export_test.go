// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "github.com/peekaboo-foundation/peekaboo/lib/codec"

// Test-only access to the private envelope type so wire tests can
// tamper with the case field.
func decodeEnvelopeForTest(data []byte, env *envelope) error {
	return codec.Unmarshal(data, env)
}

func encodeEnvelopeForTest(env envelope) ([]byte, error) {
	return codec.Marshal(env)
}
