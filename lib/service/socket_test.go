// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/testutil"
)

// startSocketServer serves config+provider on a socket in a temp
// directory and returns the socket path.
func startSocketServer(t *testing.T, config Config, provider Provider) string {
	t.Helper()
	if config.Logger == nil {
		config.Logger = testLogger()
	}
	socketPath := filepath.Join(t.TempDir(), "agent.sock")
	socket := NewSocketServer(socketPath, NewServer(config, provider), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- socket.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, done, 5*time.Second, "server shutdown"); err != nil {
			t.Errorf("Serve returned %v", err)
		}
	})

	testutil.RequireReceive(t, socket.Ready(), 5*time.Second, "server ready")
	return socketPath
}

func dialAndHandshake(t *testing.T, socketPath string) *Client {
	t.Helper()
	client, err := Dial(context.Background(), socketPath, ClientConfig{Logger: testLogger()})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	if _, err := client.Handshake(context.Background(), testIdentity(), ""); err != nil {
		t.Fatalf("handshake: %v", err)
	}
	return client
}

func TestNamedSocketEndToEnd(t *testing.T) {
	provider := &countingProvider{}
	socketPath := startSocketServer(t, Config{}, provider)
	client := dialAndHandshake(t, socketPath)

	echo, err := client.Ping(context.Background(), &protocol.PingRequest{Message: "over the wire"})
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if echo != "over the wire" {
		t.Errorf("ping echoed %q", echo)
	}
}

func TestMultipleConnectionsAreIndependent(t *testing.T) {
	provider := &countingProvider{}
	socketPath := startSocketServer(t, Config{}, provider)

	first := dialAndHandshake(t, socketPath)
	second := dialAndHandshake(t, socketPath)

	if err := first.Click(context.Background(), &protocol.ClickRequest{}); err != nil {
		t.Fatalf("first client click: %v", err)
	}
	if _, err := second.Ping(context.Background(), &protocol.PingRequest{}); err != nil {
		t.Fatalf("second client ping: %v", err)
	}
	if got := provider.callCount(protocol.OpClick); got != 1 {
		t.Errorf("click count = %d", got)
	}
}

func TestSocketPeerCredentialCrossCheck(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("SO_PEERCRED is Linux-only")
	}
	socketPath := startSocketServer(t, Config{}, &countingProvider{})

	client, err := Dial(context.Background(), socketPath, ClientConfig{Logger: testLogger()})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	identity := testIdentity()
	identity.PID = int32(os.Getpid()) + 4242
	_, err = client.Handshake(context.Background(), identity, "")
	envelope, ok := protocol.AsEnvelope(err)
	if !ok {
		t.Fatalf("want *ErrorEnvelope, got %T: %v", err, err)
	}
	if envelope.Code != protocol.CodeUnauthorizedClient {
		t.Errorf("code = %s, want unauthorized-client", envelope.Code)
	}
	if !strings.Contains(envelope.Message, "peer pid") {
		t.Errorf("message %q does not mention the peer credential", envelope.Message)
	}
}

func TestOversizedRequestRejected(t *testing.T) {
	socketPath := startSocketServer(t, Config{MaxRequestBytes: 2048}, &countingProvider{})
	client := dialAndHandshake(t, socketPath)

	big := strings.Repeat("x", 64*1024)
	err := client.TypeText(context.Background(), &protocol.TypeTextRequest{Text: big})
	if err == nil {
		t.Fatal("oversized request succeeded")
	}
	if envelope, ok := protocol.AsEnvelope(err); ok && envelope.Code != protocol.CodeInvalidRequest {
		t.Errorf("code = %s, want invalid-request", envelope.Code)
	}
}

func TestStaleSocketFileRemoved(t *testing.T) {
	dir := t.TempDir()
	socketPath := filepath.Join(dir, "agent.sock")
	if err := os.WriteFile(socketPath, []byte("stale"), 0o600); err != nil {
		t.Fatalf("planting stale socket: %v", err)
	}

	socket := NewSocketServer(socketPath, NewServer(Config{Logger: testLogger()}, &countingProvider{}), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- socket.Serve(ctx) }()
	testutil.RequireReceive(t, socket.Ready(), 5*time.Second, "server ready")

	cancel()
	if err := testutil.RequireReceive(t, done, 5*time.Second, "server shutdown"); err != nil {
		t.Errorf("Serve returned %v", err)
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Errorf("socket file not cleaned up: %v", err)
	}
}
