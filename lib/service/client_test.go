// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/compress"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/testutil"
)

const replyTimeout = 5 * time.Second

// pipeClient builds a handshaken client over an in-memory pipe.
func pipeClient(t *testing.T, config Config, provider Provider) *Client {
	t.Helper()
	if config.Logger == nil {
		config.Logger = testLogger()
	}
	client, stop := Pipe(NewServer(config, provider), ClientConfig{Logger: testLogger()})
	t.Cleanup(stop)
	if _, err := client.Handshake(context.Background(), testIdentity(), ""); err != nil {
		t.Fatalf("handshake: %v", err)
	}
	return client
}

func TestPipeEndToEnd(t *testing.T) {
	provider := &countingProvider{}
	client := pipeClient(t, Config{}, provider)
	ctx := context.Background()

	echo, err := client.Ping(ctx, &protocol.PingRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if echo != "hello" {
		t.Errorf("ping echoed %q", echo)
	}

	if err := client.Click(ctx, &protocol.ClickRequest{
		Target: protocol.ElementTarget{Query: "B1"},
	}); err != nil {
		t.Fatalf("click: %v", err)
	}
	if got := provider.callCount(protocol.OpClick); got != 1 {
		t.Errorf("click reached provider %d times, want 1", got)
	}
}

func TestClientSurfacesErrorEnvelope(t *testing.T) {
	client := pipeClient(t, Config{}, &countingProvider{})

	_, err := client.CaptureScreen(context.Background(), &protocol.CaptureScreenRequest{})
	envelope, ok := protocol.AsEnvelope(err)
	if !ok {
		t.Fatalf("want *ErrorEnvelope, got %T: %v", err, err)
	}
	if envelope.Code != protocol.CodeOperationNotSupported {
		t.Errorf("code = %s", envelope.Code)
	}
}

func TestClientSessionAndSupports(t *testing.T) {
	client := pipeClient(t, Config{
		Allowlist: []protocol.Operation{protocol.OpPing, protocol.OpListWindows},
	}, &countingProvider{})

	session := client.Session()
	if session == nil {
		t.Fatal("no session after handshake")
	}
	if len(session.SupportedOperations) != 2 {
		t.Errorf("supported operations = %v", session.SupportedOperations)
	}
	if !client.Supports(protocol.OpPing) {
		t.Error("Supports(ping) = false")
	}
	if client.Supports(protocol.OpClick) {
		t.Error("Supports(click) = true for disabled operation")
	}
}

func TestOperationBeforeHandshakeRejected(t *testing.T) {
	client, stop := Pipe(NewServer(Config{Logger: testLogger()}, &countingProvider{}),
		ClientConfig{Logger: testLogger()})
	t.Cleanup(stop)

	_, err := client.Ping(context.Background(), &protocol.PingRequest{})
	envelope, ok := protocol.AsEnvelope(err)
	if !ok {
		t.Fatalf("want *ErrorEnvelope, got %T: %v", err, err)
	}
	if envelope.Code != protocol.CodeInvalidRequest {
		t.Errorf("code = %s, want invalid-request", envelope.Code)
	}
}

func TestEmbeddedEnablesFullOperationSet(t *testing.T) {
	client, stop := Embedded(&countingProvider{}, "test-build", testLogger())
	t.Cleanup(stop)

	session, err := client.Handshake(context.Background(), testIdentity(), protocol.HostKindInProcess)
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if session.HostKind != protocol.HostKindInProcess {
		t.Errorf("host kind = %s", session.HostKind)
	}
	if session.Build != "test-build" {
		t.Errorf("build = %q", session.Build)
	}
	if len(session.SupportedOperations) != len(protocol.AllOperations()) {
		t.Errorf("embedded host enables %d operations, want %d",
			len(session.SupportedOperations), len(protocol.AllOperations()))
	}
	if !client.Supports(protocol.OpRunScript) {
		t.Error("embedded host should allow run-script")
	}
}

// captureProvider serves one canned capture, compressed on the way
// out like a backend with compression enabled.
type captureProvider struct {
	UnsupportedProvider
	raw []byte
}

func (p *captureProvider) CaptureScreen(context.Context, *protocol.CaptureScreenRequest) (*protocol.CaptureData, error) {
	capture := &protocol.CaptureData{
		Data:     append([]byte(nil), p.raw...),
		MIMEType: "image/bmp",
		Width:    64,
		Height:   64,
	}
	compress.PackCapture(capture)
	return capture, nil
}

func TestCompressedCaptureUnpacksAtClient(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF, 0x01}, 4096)
	client := pipeClient(t, Config{}, &captureProvider{raw: raw})

	capture, err := client.CaptureScreen(context.Background(), &protocol.CaptureScreenRequest{})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if capture.Compression != "" {
		t.Errorf("compression tag survived unpack: %q", capture.Compression)
	}
	if !bytes.Equal(capture.Data, raw) {
		t.Errorf("capture data mismatch: got %d bytes, want %d", len(capture.Data), len(raw))
	}
}

func TestConcurrentCallsCorrelate(t *testing.T) {
	client := pipeClient(t, Config{}, &countingProvider{})
	ctx := context.Background()

	const callers = 16
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		i := i
		go func() {
			message := fmt.Sprintf("caller-%d", i)
			echo, err := client.Ping(ctx, &protocol.PingRequest{Message: message})
			if err == nil && echo != message {
				err = fmt.Errorf("echoed %q, want %q", echo, message)
			}
			results <- err
		}()
	}
	for i := 0; i < callers; i++ {
		if err := testutil.RequireReceive(t, results, replyTimeout, "caller %d", i); err != nil {
			t.Errorf("caller failed: %v", err)
		}
	}
}

// silentServer reads and discards everything the client writes and
// never replies, for exercising pending-call teardown.
func silentServer(t *testing.T) *Client {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	go io.Copy(io.Discard, serverConn)
	t.Cleanup(func() { serverConn.Close() })
	client := NewClient(clientConn, ClientConfig{Logger: testLogger()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCloseResolvesPendingCalls(t *testing.T) {
	client := silentServer(t)

	pending := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := client.Ping(context.Background(), &protocol.PingRequest{})
			pending <- err
		}()
	}
	// Let both calls reach the awaiting state.
	time.Sleep(50 * time.Millisecond)

	client.Close()
	for i := 0; i < 2; i++ {
		err := testutil.RequireReceive(t, pending, replyTimeout, "pending call %d", i)
		if !errors.Is(err, net.ErrClosed) {
			t.Errorf("pending call resolved with %v, want net.ErrClosed", err)
		}
	}
}

func TestContextCancellationReleasesCaller(t *testing.T) {
	client := silentServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Ping(ctx, &protocol.PingRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestUnsolicitedReplyTearsConnectionDown(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	client := NewClient(clientConn, ClientConfig{Logger: testLogger()})
	t.Cleanup(func() { client.Close(); serverConn.Close() })

	reply, err := protocol.EncodeResponse(&protocol.OKResponse{})
	if err != nil {
		t.Fatalf("encoding reply: %v", err)
	}
	if _, err := serverConn.Write(reply); err != nil {
		t.Fatalf("writing unsolicited reply: %v", err)
	}

	deadline := time.Now().Add(replyTimeout)
	for {
		_, err := client.Ping(context.Background(), &protocol.PingRequest{})
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client still usable after unsolicited reply")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSendAfterCloseFailsFast(t *testing.T) {
	client := silentServer(t)
	client.Close()

	_, err := client.Ping(context.Background(), &protocol.PingRequest{})
	if !errors.Is(err, net.ErrClosed) {
		t.Fatalf("err = %v, want net.ErrClosed", err)
	}
}
