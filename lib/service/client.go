// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/peekaboo-foundation/peekaboo/lib/codec"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/throttle"
)

// DefaultMaxConcurrent is the client-side admission limit: how many
// calls may be in flight on one connection before further senders
// queue.
const DefaultMaxConcurrent = 4

// ClientConfig tunes a Client. The zero value is usable.
type ClientConfig struct {
	// MaxConcurrent caps in-flight calls on this connection. Zero
	// means DefaultMaxConcurrent.
	MaxConcurrent int

	// Logger receives connection lifecycle events. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Client wraps one connection to an agent. Calls may be issued from
// any goroutine: writes are serialized, and because the server
// replies in request order per connection, replies are matched to
// callers through a FIFO queue of pending slots serviced by a single
// read loop.
//
// Every pending slot is resolved exactly once: by its reply, or by
// the connection failing, or by Close. A caller whose context ends
// first returns immediately; the slot stays queued so the late reply
// is still consumed and correlation is preserved.
type Client struct {
	conn   net.Conn
	gate   *throttle.Gate
	logger *slog.Logger

	// sendMu serializes enqueue+write so queue order always matches
	// wire order.
	sendMu sync.Mutex

	mu       sync.Mutex
	pending  list.List // of *pendingReply
	closed   bool
	closeErr error
	session  *protocol.HandshakeResponse

	readDone chan struct{}
}

type pendingReply struct {
	result chan rawReply // buffered 1
}

type rawReply struct {
	data codec.RawMessage
	err  error
}

// NewClient wraps an established connection and starts its read
// loop. The caller should Handshake before issuing operations.
func NewClient(conn net.Conn, config ClientConfig) *Client {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		conn:     conn,
		gate:     throttle.NewGate(maxConcurrent),
		logger:   logger,
		readDone: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Dial connects to an agent's named socket.
func Dial(ctx context.Context, socketPath string, config ClientConfig) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dialing agent socket %s: %w", socketPath, err)
	}
	return NewClient(conn, config), nil
}

// readLoop delivers replies to pending slots in FIFO order. It owns
// the read side of the connection; any read failure tears the client
// down and resolves every pending slot with the failure.
func (c *Client) readLoop() {
	defer close(c.readDone)
	decoder := codec.NewDecoder(c.conn)
	for {
		var raw codec.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			c.fail(fmt.Errorf("connection lost: %w", err))
			return
		}
		c.mu.Lock()
		front := c.pending.Front()
		if front != nil {
			c.pending.Remove(front)
		}
		c.mu.Unlock()
		if front == nil {
			// A reply with no outstanding call means correlation is
			// broken; nothing on this connection can be trusted.
			c.fail(fmt.Errorf("unsolicited reply from server"))
			return
		}
		front.Value.(*pendingReply).result <- rawReply{data: raw}
	}
}

// fail closes the client and resolves every pending slot with err.
// Idempotent; only the first failure is recorded.
func (c *Client) fail(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.closeErr = err
	var slots []*pendingReply
	for front := c.pending.Front(); front != nil; front = c.pending.Front() {
		c.pending.Remove(front)
		slots = append(slots, front.Value.(*pendingReply))
	}
	c.mu.Unlock()

	c.conn.Close()
	for _, slot := range slots {
		slot.result <- rawReply{err: err}
	}
}

// Close tears down the connection. In-flight calls resolve with
// net.ErrClosed.
func (c *Client) Close() error {
	c.fail(net.ErrClosed)
	<-c.readDone
	return nil
}

// roundTrip sends one raw envelope and waits for its raw reply. The
// caller must hold a throttle slot.
func (c *Client) roundTrip(ctx context.Context, data []byte) ([]byte, error) {
	slot := &pendingReply{result: make(chan rawReply, 1)}

	c.sendMu.Lock()
	c.mu.Lock()
	if c.closed {
		err := c.closeErr
		c.mu.Unlock()
		c.sendMu.Unlock()
		return nil, err
	}
	c.pending.PushBack(slot)
	c.mu.Unlock()
	_, err := c.conn.Write(data)
	c.sendMu.Unlock()
	if err != nil {
		c.fail(fmt.Errorf("writing request: %w", err))
		return nil, err
	}

	select {
	case reply := <-slot.result:
		return reply.data, reply.err
	case <-ctx.Done():
		// The slot stays queued; the read loop will consume the late
		// reply into the slot's buffer to keep correlation intact.
		return nil, ctx.Err()
	}
}

// Handshake negotiates the connection: protocol version, identity
// verification, and capability discovery. It must complete before any
// operation; a server rejection arrives as a *protocol.ErrorEnvelope.
func (c *Client) Handshake(ctx context.Context, identity protocol.ClientIdentity, requestedKind protocol.HostKind) (*protocol.HandshakeResponse, error) {
	request := &protocol.HandshakeRequest{
		Version:           protocol.CurrentVersion,
		Client:            identity,
		RequestedHostKind: requestedKind,
	}
	data, err := protocol.EncodeHandshakeRequest(request)
	if err != nil {
		return nil, err
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.gate.Release()
	raw, err := c.roundTrip(ctx, data)
	if err != nil {
		return nil, err
	}
	response, err := protocol.DecodeHandshakeReply(raw)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = response
	c.mu.Unlock()
	c.logger.Debug("handshake complete",
		"version", response.NegotiatedVersion.String(),
		"host_kind", string(response.HostKind),
		"operations", len(response.SupportedOperations))
	return response, nil
}

// Session returns the handshake response for this connection, or nil
// before Handshake completes.
func (c *Client) Session() *protocol.HandshakeResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Supports reports whether the server enabled op, per the handshake.
// False before Handshake completes.
func (c *Client) Supports(op protocol.Operation) bool {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil {
		return false
	}
	for _, enabled := range session.SupportedOperations {
		if enabled == op {
			return true
		}
	}
	return false
}

// Send issues one operation and returns its decoded response. It
// acquires a throttle slot for the duration of the call and releases
// it on every path. A server-reported failure returns the
// *protocol.ErrorEnvelope as the error; transport failures pass
// through unwrapped.
func (c *Client) Send(ctx context.Context, request protocol.Request) (protocol.Response, error) {
	data, err := protocol.EncodeRequest(request)
	if err != nil {
		return nil, err
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.gate.Release()
	raw, err := c.roundTrip(ctx, data)
	if err != nil {
		return nil, err
	}
	response, err := protocol.DecodeResponseEnvelope(raw)
	if err != nil {
		return nil, protocol.NewError(protocol.CodeDecodingFailed,
			"reply could not be decoded").WithDetails(err.Error())
	}
	if failure, ok := response.(*protocol.ErrorResponse); ok {
		return nil, failure.Envelope()
	}
	return response, nil
}

// sendExpectOK issues an operation whose only success shape is the
// bare acknowledgement.
func (c *Client) sendExpectOK(ctx context.Context, request protocol.Request) error {
	response, err := c.Send(ctx, request)
	if err != nil {
		return err
	}
	if _, ok := response.(*protocol.OKResponse); !ok {
		return c.unexpectedReply(request, response)
	}
	return nil
}

func (c *Client) unexpectedReply(request protocol.Request, response protocol.Response) *protocol.ErrorEnvelope {
	return protocol.Errorf(protocol.CodeInvalidRequest,
		"unexpected %T reply to %s", response, request.Operation())
}

// call centralizes the typed per-operation projection: send, then
// assert the expected response variant.
func call[T any, PT interface {
	*T
	protocol.Response
}](ctx context.Context, c *Client, request protocol.Request) (*T, error) {
	response, err := c.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	typed, ok := response.(PT)
	if !ok {
		return nil, c.unexpectedReply(request, response)
	}
	return (*T)(typed), nil
}
