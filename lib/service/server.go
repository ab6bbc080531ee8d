// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"slices"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/codec"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// DefaultMaxRequestBytes bounds a single request envelope. Capture
// replies can be large but requests are small; the bound exists so a
// misbehaving client cannot make the server buffer arbitrary amounts.
const DefaultMaxRequestBytes = 4 << 20

// Config describes a server instance. The zero value of every field
// has a usable default.
type Config struct {
	// Allowlist is the set of operations this instance will dispatch.
	// Empty means protocol.RemoteOperations(), the safe default for an
	// out-of-process host.
	Allowlist []protocol.Operation

	// SupportedVersions is the protocol range offered during the
	// handshake. Zero means protocol.SupportedVersions.
	SupportedVersions protocol.VersionRange

	// AllowedBundles restricts which client bundle identifiers may
	// complete a handshake. Empty means no restriction.
	AllowedBundles []string

	// AllowedTeams restricts client team identifiers. Empty means no
	// restriction.
	AllowedTeams []string

	// HostKind is the role reported in handshake responses. Empty
	// means protocol.HostKindHelper.
	HostKind protocol.HostKind

	// Build identifies this server binary in handshake responses.
	Build string

	// MaxRequestBytes bounds a single request envelope on stream
	// connections. Zero means DefaultMaxRequestBytes.
	MaxRequestBytes int64

	// Logger receives routing and lifecycle events. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Server routes decoded requests to a Provider. It holds no
// per-connection state itself; connection state lives in the Caller
// passed to Handle, so one Server safely serves many connections.
type Server struct {
	provider Provider
	logger   *slog.Logger

	versions        protocol.VersionRange
	hostKind        protocol.HostKind
	build           string
	maxRequestBytes int64

	enabled     map[protocol.Operation]bool
	enabledList []protocol.Operation
	bundles     map[string]bool
	teams       map[string]bool
}

// NewServer builds a Server from a config and a provider.
func NewServer(config Config, provider Provider) *Server {
	allowlist := config.Allowlist
	if len(allowlist) == 0 {
		allowlist = protocol.RemoteOperations()
	}
	enabled := make(map[protocol.Operation]bool, len(allowlist))
	enabledList := make([]protocol.Operation, 0, len(allowlist))
	for _, op := range allowlist {
		if !protocol.KnownOperation(op) || enabled[op] {
			continue
		}
		enabled[op] = true
		enabledList = append(enabledList, op)
	}
	slices.Sort(enabledList)

	versions := config.SupportedVersions
	if versions == (protocol.VersionRange{}) {
		versions = protocol.SupportedVersions
	}
	hostKind := config.HostKind
	if hostKind == "" {
		hostKind = protocol.HostKindHelper
	}
	maxRequestBytes := config.MaxRequestBytes
	if maxRequestBytes <= 0 {
		maxRequestBytes = DefaultMaxRequestBytes
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		provider:        provider,
		logger:          logger,
		versions:        versions,
		hostKind:        hostKind,
		build:           config.Build,
		maxRequestBytes: maxRequestBytes,
		enabled:         enabled,
		enabledList:     enabledList,
		bundles:         stringSet(config.AllowedBundles),
		teams:           stringSet(config.AllowedTeams),
	}
}

func stringSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Caller is the per-connection state the server tracks: the peer
// credential captured at accept time and the identity and version
// fixed by the handshake. A fresh Caller is created per connection
// and must not be shared across connections.
type Caller struct {
	// PeerPID is the kernel-reported process ID of the connecting
	// peer, when the transport can provide one. Zero means
	// unavailable (in-process pipes, non-Linux sockets).
	PeerPID int32

	identity   protocol.ClientIdentity
	negotiated protocol.ProtocolVersion
	handshaken bool
}

// Handshaken reports whether the connection completed its handshake.
func (c *Caller) Handshaken() bool { return c.handshaken }

// Identity returns the client identity fixed by the handshake. Zero
// before the handshake completes.
func (c *Caller) Identity() protocol.ClientIdentity { return c.identity }

// Negotiated returns the protocol version agreed at handshake.
func (c *Caller) Negotiated() protocol.ProtocolVersion { return c.negotiated }

// Handle processes one raw request envelope and returns the raw reply
// envelope. Every failure is reported in-band as an error response;
// Handle never returns an empty reply for a decodable or undecodable
// request alike.
//
// Order of gates: decode, handshake state, allowlist, dispatch. The
// handshake case is processed regardless of the allowlist.
func (s *Server) Handle(ctx context.Context, caller *Caller, raw []byte) []byte {
	request, handshake, err := protocol.DecodeRequestEnvelope(raw)
	if err != nil {
		s.logger.Warn("undecodable request", "error", err)
		return s.encodeError(protocol.NewError(protocol.CodeDecodingFailed,
			"request could not be decoded").WithDetails(err.Error()))
	}
	if handshake != nil {
		return s.handleHandshake(caller, handshake)
	}
	if !caller.handshaken {
		return s.encodeError(protocol.NewError(protocol.CodeInvalidRequest,
			"handshake required before any operation"))
	}

	op := request.Operation()
	if !s.enabled[op] {
		return s.encodeError(protocol.Errorf(protocol.CodeOperationNotSupported,
			"operation %q is not enabled on this server", op))
	}

	response, err := s.dispatch(ctx, request)
	if err != nil {
		envelope := protocol.WrapInternal(err)
		s.logger.Warn("operation failed",
			"operation", string(op),
			"code", string(envelope.Code),
			"error", envelope.Message)
		response = &protocol.ErrorResponse{Err: *envelope}
	}

	data, err := protocol.EncodeResponse(response)
	if err != nil {
		s.logger.Error("response encoding failed", "operation", string(op), "error", err)
		return s.encodeError(protocol.NewError(protocol.CodeInternalError,
			"response could not be encoded"))
	}
	return data
}

func (s *Server) encodeError(envelope *protocol.ErrorEnvelope) []byte {
	data, err := protocol.EncodeResponse(&protocol.ErrorResponse{Err: *envelope})
	if err != nil {
		// An error response is a fixed shape of three strings;
		// encoding it cannot fail short of a codec bug.
		s.logger.Error("error response encoding failed", "error", err)
		return nil
	}
	return data
}

func (s *Server) handleHandshake(caller *Caller, request *protocol.HandshakeRequest) []byte {
	if caller.handshaken {
		return s.encodeError(protocol.NewError(protocol.CodeInvalidRequest,
			"handshake already completed on this connection"))
	}
	negotiated, ok := s.negotiate(request.Version)
	if !ok {
		return s.encodeError(protocol.Errorf(protocol.CodeVersionMismatch,
			"protocol version %s is outside the supported range %s",
			request.Version, s.versions))
	}
	if envelope := s.authorize(caller, request.Client); envelope != nil {
		s.logger.Warn("handshake rejected",
			"bundle", request.Client.BundleID,
			"pid", request.Client.PID,
			"error", envelope.Message)
		return s.encodeError(envelope)
	}

	caller.identity = request.Client
	caller.negotiated = negotiated
	caller.handshaken = true
	s.logger.Info("handshake complete",
		"bundle", request.Client.BundleID,
		"pid", request.Client.PID,
		"version", negotiated.String())

	response := &protocol.HandshakeResponse{
		NegotiatedVersion:   negotiated,
		HostKind:            s.hostKind,
		Build:               s.build,
		SupportedOperations: slices.Clone(s.enabledList),
		PermissionTags:      protocol.PermissionTags(s.enabledList),
	}
	data, err := protocol.EncodeHandshakeResponse(response)
	if err != nil {
		s.logger.Error("handshake response encoding failed", "error", err)
		return s.encodeError(protocol.NewError(protocol.CodeInternalError,
			"handshake response could not be encoded"))
	}
	return data
}

// negotiate picks the connection version for a requested one. A
// version inside the supported range is accepted exactly; a version
// whose major revision the range covers is clamped to the nearest
// bound (minor revisions are backward compatible); anything else has
// no common ground.
func (s *Server) negotiate(requested protocol.ProtocolVersion) (protocol.ProtocolVersion, bool) {
	if s.versions.Contains(requested) {
		return requested, true
	}
	if requested.Major >= s.versions.Lower.Major && requested.Major <= s.versions.Upper.Major {
		return s.versions.Clamp(requested), true
	}
	return protocol.ProtocolVersion{}, false
}

func (s *Server) authorize(caller *Caller, client protocol.ClientIdentity) *protocol.ErrorEnvelope {
	if s.bundles != nil && !s.bundles[client.BundleID] {
		return protocol.Errorf(protocol.CodeUnauthorizedClient,
			"bundle %q is not permitted to connect", client.BundleID)
	}
	if s.teams != nil && !s.teams[client.TeamID] {
		return protocol.Errorf(protocol.CodeUnauthorizedClient,
			"team %q is not permitted to connect", client.TeamID)
	}
	// The socket layer captures the peer credential from the kernel.
	// A client claiming a different PID than the one it connected
	// with is lying about its identity.
	if caller.PeerPID != 0 && client.PID != 0 && caller.PeerPID != client.PID {
		return protocol.Errorf(protocol.CodeUnauthorizedClient,
			"claimed pid %d does not match socket peer pid %d",
			client.PID, caller.PeerPID)
	}
	return nil
}

// ServeConn reads request envelopes from conn until EOF or context
// cancellation, replying in order. Requests on one connection are
// handled sequentially; call ServeConn from one goroutine per
// connection for concurrency across clients.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn, peerPID int32) error {
	defer conn.Close()

	// Unblock a pending read when the context ends.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	caller := &Caller{PeerPID: peerPID}
	limited := &io.LimitedReader{R: conn}
	decoder := codec.NewDecoder(limited)
	for {
		limited.N = s.maxRequestBytes
		var raw codec.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case limited.N <= 0 && errors.Is(err, io.ErrUnexpectedEOF):
				reply := s.encodeError(protocol.Errorf(protocol.CodeInvalidRequest,
					"request exceeds the %d byte limit", s.maxRequestBytes))
				conn.Write(reply)
				return fmt.Errorf("request exceeds %d bytes", s.maxRequestBytes)
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, os.ErrDeadlineExceeded):
				return nil
			default:
				return fmt.Errorf("reading request: %w", err)
			}
		}
		reply := s.Handle(ctx, caller, raw)
		if len(reply) == 0 {
			continue
		}
		if _, err := conn.Write(reply); err != nil {
			return fmt.Errorf("writing reply: %w", err)
		}
	}
}
