// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolVersion identifies a revision of the agent protocol.
// Versions are totally ordered by (Major, Minor). Immutable once
// constructed.
type ProtocolVersion struct {
	Major uint16 `cbor:"major"`
	Minor uint16 `cbor:"minor"`
}

// CurrentVersion is the protocol revision this build speaks natively.
var CurrentVersion = ProtocolVersion{Major: 1, Minor: 2}

// SupportedVersions is the inclusive range of protocol revisions this
// build can negotiate down (or up) to.
var SupportedVersions = VersionRange{
	Lower: ProtocolVersion{Major: 1, Minor: 0},
	Upper: CurrentVersion,
}

// Compare returns -1, 0, or +1 as v is ordered before, equal to, or
// after other.
func (v ProtocolVersion) Compare(other ProtocolVersion) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether v is ordered strictly before other.
func (v ProtocolVersion) Less(other ProtocolVersion) bool {
	return v.Compare(other) < 0
}

// String renders the version as "major.minor".
func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses a "major.minor" string.
func ParseVersion(s string) (ProtocolVersion, error) {
	major, minor, found := strings.Cut(s, ".")
	if !found {
		return ProtocolVersion{}, fmt.Errorf("protocol version %q: want major.minor", s)
	}
	majorValue, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return ProtocolVersion{}, fmt.Errorf("protocol version %q: bad major: %w", s, err)
	}
	minorValue, err := strconv.ParseUint(minor, 10, 16)
	if err != nil {
		return ProtocolVersion{}, fmt.Errorf("protocol version %q: bad minor: %w", s, err)
	}
	return ProtocolVersion{Major: uint16(majorValue), Minor: uint16(minorValue)}, nil
}

// VersionRange is an inclusive range of protocol versions.
type VersionRange struct {
	Lower ProtocolVersion `cbor:"lower"`
	Upper ProtocolVersion `cbor:"upper"`
}

// Contains reports whether v lies within the range (inclusive).
func (r VersionRange) Contains(v ProtocolVersion) bool {
	return r.Lower.Compare(v) <= 0 && v.Compare(r.Upper) <= 0
}

// Clamp returns v limited to the range: v itself when in range,
// otherwise the nearest bound. Negotiation uses this so a client
// requesting a version inside the range gets exactly that version,
// never a silently substituted one.
func (r VersionRange) Clamp(v ProtocolVersion) ProtocolVersion {
	if v.Less(r.Lower) {
		return r.Lower
	}
	if r.Upper.Less(v) {
		return r.Upper
	}
	return v
}

// String renders the range as "lower–upper".
func (r VersionRange) String() string {
	return r.Lower.String() + "–" + r.Upper.String()
}
