// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// ClientIdentity describes the process on the client end of a
// connection. It is captured once, at handshake time, and is immutable
// for the connection's lifetime. The server consults it only for
// authorization, never for routing or business logic.
type ClientIdentity struct {
	// BundleID is the client application's bundle identifier (e.g.
	// "com.example.gui"). Empty for bare processes.
	BundleID string `cbor:"bundle_id,omitempty"`

	// TeamID is the code-signing team identifier, when the client
	// binary is signed. Empty otherwise.
	TeamID string `cbor:"team_id,omitempty"`

	// PID is the client's process ID as the client reports it. On
	// platforms with kernel-verified peer credentials the server
	// cross-checks this claim during the handshake.
	PID int32 `cbor:"pid"`

	// Hostname is the client machine's hostname. Informational only;
	// the protocol never crosses hosts.
	Hostname string `cbor:"hostname,omitempty"`
}

// HostKind is the role a server process plays, reported to clients in
// the handshake response so they can tailor expectations (a GUI app
// embedding the agent in-process has every permission its parent has;
// an on-demand helper may exit between calls).
type HostKind string

const (
	// HostKindGUI is the full desktop application hosting the agent.
	HostKindGUI HostKind = "gui"

	// HostKindHelper is the separately-launched privileged helper
	// process. This is the default for named-socket servers.
	HostKindHelper HostKind = "helper"

	// HostKindOnDemand is a helper launched per-request by the system
	// and liable to exit when idle.
	HostKindOnDemand HostKind = "on-demand"

	// HostKindInProcess is an agent embedded directly in the calling
	// process, connected over an in-memory pipe.
	HostKindInProcess HostKind = "in-process"
)

// Valid reports whether k is one of the defined host kinds.
func (k HostKind) Valid() bool {
	switch k {
	case HostKindGUI, HostKindHelper, HostKindOnDemand, HostKindInProcess:
		return true
	}
	return false
}
