// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package service implements both ends of the agent protocol: the
// server that routes decoded requests through its allowlist to an
// injected Provider, and the client that wraps a connection with
// typed per-operation methods, reply bridging, and an admission
// throttle.
//
// The server enforces three gates, strictly before any provider
// method runs: decode (malformed bytes become decoding-failed),
// handshake (version negotiation plus client-identity verification),
// and the operation allowlist. The handshake is the only exchange
// that bypasses the allowlist, because its reply is where the client
// learns what the allowlist is.
//
// Transport is a local stream connection: a named Unix socket for a
// separately-launched privileged helper, or an in-memory pipe for a
// process embedding the agent directly. Both modes produce the same
// Server/Client pair; see Dial, ListenAndServe, and Embedded.
package service
