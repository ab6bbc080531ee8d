// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package service

import (
	"net"

	"golang.org/x/sys/unix"
)

// peerCredentials returns the kernel-verified process ID of the peer
// on a Unix socket connection, or zero when the credential cannot be
// read. Unlike the PID a client claims in its handshake, this one
// cannot be forged.
func peerCredentials(conn net.Conn) int32 {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return 0
	}
	rawConn, err := unixConn.SyscallConn()
	if err != nil {
		return 0
	}
	var pid int32
	rawConn.Control(func(fd uintptr) {
		ucred, err := unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
		if err == nil {
			pid = ucred.Pid
		}
	})
	return pid
}
