// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package service

import "net"

// peerCredentials reports zero on platforms without SO_PEERCRED; the
// handshake then skips the peer PID cross-check.
func peerCredentials(net.Conn) int32 {
	return 0
}
