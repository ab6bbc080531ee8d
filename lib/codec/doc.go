// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the Peekaboo-standard CBOR codec.
//
// All traffic between the automation agent and its clients is CBOR:
// self-delimiting on a stream socket, compact for image payloads, and
// deterministic so the same logical message always produces identical
// bytes. Every package that touches the wire imports this wrapper
// rather than fxamacker/cbor directly, so encoder and decoder options
// are configured in exactly one place.
package codec
