// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol defines the wire schema spoken between a Peekaboo
// client and the privileged automation agent.
//
// The package is pure data plus pure functions over that data: the
// protocol version and its ordering, the closed Operation enumeration
// with its required-permission mapping and default allowlists, the
// client identity exchanged at handshake, the Request and Response
// tagged unions with their envelope encoding, and the ErrorEnvelope
// taxonomy used for every failure that crosses the process boundary.
//
// Nothing here performs I/O. The server and client in lib/service own
// the sockets; this package owns what the bytes mean.
package protocol
