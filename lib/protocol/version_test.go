// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "testing"

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b ProtocolVersion
		want int
	}{
		{ProtocolVersion{1, 0}, ProtocolVersion{1, 0}, 0},
		{ProtocolVersion{1, 0}, ProtocolVersion{1, 1}, -1},
		{ProtocolVersion{1, 1}, ProtocolVersion{1, 0}, 1},
		{ProtocolVersion{1, 9}, ProtocolVersion{2, 0}, -1},
		{ProtocolVersion{2, 0}, ProtocolVersion{1, 9}, 1},
		{ProtocolVersion{0, 5}, ProtocolVersion{1, 0}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestVersionOrderingProperties checks transitivity and antisymmetry
// over a small cross product.
func TestVersionOrderingProperties(t *testing.T) {
	versions := []ProtocolVersion{
		{0, 0}, {0, 9}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 5},
	}
	for _, a := range versions {
		for _, b := range versions {
			if a.Less(b) && b.Less(a) {
				t.Errorf("antisymmetry violated: %v < %v and %v < %v", a, b, b, a)
			}
			for _, c := range versions {
				if a.Less(b) && b.Less(c) && !a.Less(c) {
					t.Errorf("transitivity violated: %v < %v < %v but not %v < %v", a, b, c, a, c)
				}
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.2")
	if err != nil {
		t.Fatalf("ParseVersion: %v", err)
	}
	if v != (ProtocolVersion{1, 2}) {
		t.Errorf("got %v, want 1.2", v)
	}
	for _, bad := range []string{"", "1", "1.x", "x.1", "1.2.3x", "-1.0"} {
		if _, err := ParseVersion(bad); err == nil {
			t.Errorf("ParseVersion(%q) succeeded, want error", bad)
		}
	}
}

func TestVersionRange(t *testing.T) {
	r := VersionRange{Lower: ProtocolVersion{1, 0}, Upper: ProtocolVersion{1, 2}}

	if !r.Contains(ProtocolVersion{1, 0}) || !r.Contains(ProtocolVersion{1, 1}) || !r.Contains(ProtocolVersion{1, 2}) {
		t.Error("range should contain its bounds and interior")
	}
	if r.Contains(ProtocolVersion{0, 9}) || r.Contains(ProtocolVersion{1, 3}) || r.Contains(ProtocolVersion{2, 0}) {
		t.Error("range should not contain versions outside it")
	}

	// Clamp is the identity inside the range.
	if got := r.Clamp(ProtocolVersion{1, 1}); got != (ProtocolVersion{1, 1}) {
		t.Errorf("Clamp(1.1) = %v, want 1.1", got)
	}
	if got := r.Clamp(ProtocolVersion{0, 1}); got != r.Lower {
		t.Errorf("Clamp below range = %v, want %v", got, r.Lower)
	}
	if got := r.Clamp(ProtocolVersion{3, 0}); got != r.Upper {
		t.Errorf("Clamp above range = %v, want %v", got, r.Upper)
	}
}

func TestSupportedVersionsContainsCurrent(t *testing.T) {
	if !SupportedVersions.Contains(CurrentVersion) {
		t.Errorf("supported range %v excludes current version %v", SupportedVersions, CurrentVersion)
	}
}
