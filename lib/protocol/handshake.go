// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// HandshakeRequest is the first message on every connection. It is
// deliberately not a Request variant: the handshake is the one
// exchange that bypasses the operation allowlist, because the
// allowlist answer itself (the supported-operations list) is part of
// the handshake response.
type HandshakeRequest struct {
	// Version is the protocol revision the client wants to speak.
	Version ProtocolVersion `cbor:"protocol_version"`

	// Client identifies the connecting process for authorization.
	Client ClientIdentity `cbor:"client"`

	// RequestedHostKind optionally asks the server to confirm it is a
	// particular kind of host. Empty means "whatever you are".
	RequestedHostKind HostKind `cbor:"requested_host_kind,omitempty"`
}

// HandshakeResponse concludes a successful handshake.
type HandshakeResponse struct {
	// NegotiatedVersion is the protocol revision both sides speak for
	// the remainder of the connection. Always within the server's
	// supported range.
	NegotiatedVersion ProtocolVersion `cbor:"negotiated_version"`

	// HostKind is the role this server actually plays.
	HostKind HostKind `cbor:"host_kind"`

	// Build identifies the server binary (version string plus content
	// digest) for diagnostics and skew detection.
	Build string `cbor:"build,omitempty"`

	// SupportedOperations lists the operations enabled on this server
	// instance, sorted, so the client can gray out capabilities the
	// server will reject anyway.
	SupportedOperations []Operation `cbor:"supported_operations"`

	// PermissionTags maps each enabled operation to the OS permissions
	// it requires, letting a client proactively explain a missing
	// grant to its user before the first permission-denied error.
	PermissionTags map[string][]PermissionKind `cbor:"permission_tags,omitempty"`
}
