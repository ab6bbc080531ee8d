// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
)

// SocketServer serves the agent protocol on a named Unix socket.
// Connections are persistent: each carries a handshake followed by
// any number of sequential request-response cycles. Connections are
// served concurrently, one goroutine each.
type SocketServer struct {
	socketPath string
	server     *Server
	logger     *slog.Logger

	mu       sync.Mutex
	ready    chan struct{}
	listener net.Listener

	// activeConnections tracks in-flight connections for graceful
	// shutdown. Serve waits for all of them before returning.
	activeConnections sync.WaitGroup
}

// NewSocketServer creates a listener for server at socketPath.
func NewSocketServer(socketPath string, server *Server, logger *slog.Logger) *SocketServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SocketServer{
		socketPath: socketPath,
		server:     server,
		logger:     logger,
		ready:      make(chan struct{}),
	}
}

// Ready is closed once the socket is listening. Useful for callers
// that start Serve in a goroutine and need to know when Dial will
// succeed.
func (s *SocketServer) Ready() <-chan struct{} {
	return s.ready
}

// Serve listens on the socket and accepts connections until ctx is
// cancelled, then stops accepting and waits for in-flight
// connections to drain. Any stale socket file at the path is removed
// before listening, and the socket file is removed on return.
func (s *SocketServer) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	s.mu.Lock()
	s.listener = listener
	close(s.ready)
	s.mu.Unlock()

	// Unblock Accept when the context is cancelled.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("agent listening", "path", s.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		peerPID := peerCredentials(conn)
		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			if err := s.server.ServeConn(ctx, conn, peerPID); err != nil {
				s.logger.Warn("connection ended", "peer_pid", peerPID, "error", err)
			}
		}()
	}

	s.activeConnections.Wait()
	s.logger.Info("agent stopped", "path", s.socketPath)
	return nil
}

// ListenAndServe is the one-call named-socket bootstrap: build the
// socket server and serve until the context ends.
func ListenAndServe(ctx context.Context, socketPath string, server *Server, logger *slog.Logger) error {
	return NewSocketServer(socketPath, server, logger).Serve(ctx)
}
