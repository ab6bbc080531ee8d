// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"log/slog"
	"net"
	"os"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Pipe connects a Client directly to server over an in-memory pipe,
// for hosts that embed the agent instead of talking to a separate
// helper process. The returned stop function tears down both ends;
// cancelling the work done by in-flight calls is the caller's
// business via their contexts.
//
// The peer credential is this process's own PID, so an identity
// claiming the current process passes the same checks it would pass
// over a socket.
func Pipe(server *Server, config ClientConfig) (*Client, func()) {
	clientConn, serverConn := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan struct{})
	go func() {
		defer close(served)
		server.ServeConn(ctx, serverConn, int32(os.Getpid()))
	}()
	client := NewClient(clientConn, config)
	stop := func() {
		client.Close()
		cancel()
		serverConn.Close()
		<-served
	}
	return client, stop
}

// Embedded builds an in-process agent around provider with the full
// operation set enabled (the process is talking to itself; the
// remote-hosting restrictions do not apply) and returns a connected
// client.
func Embedded(provider Provider, build string, logger *slog.Logger) (*Client, func()) {
	server := NewServer(Config{
		Allowlist: protocol.AllOperations(),
		HostKind:  protocol.HostKindInProcess,
		Build:     build,
		Logger:    logger,
	}, provider)
	return Pipe(server, ClientConfig{Logger: logger})
}

// NewLogger builds the JSON stderr logger the agent binaries use.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
