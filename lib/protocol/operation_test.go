// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"sort"
	"testing"
)

func TestAllOperationsSortedAndDistinct(t *testing.T) {
	ops := AllOperations()
	if len(ops) != len(operationRegistry) {
		t.Fatalf("AllOperations returned %d ops, registry has %d", len(ops), len(operationRegistry))
	}
	if !sort.SliceIsSorted(ops, func(i, j int) bool { return ops[i] < ops[j] }) {
		t.Error("AllOperations is not sorted")
	}
	seen := make(map[Operation]bool)
	for _, op := range ops {
		if seen[op] {
			t.Errorf("duplicate operation %q", op)
		}
		seen[op] = true
	}
}

func TestRemoteOperationsExcludesScripting(t *testing.T) {
	remote := RemoteOperations()
	for _, op := range remote {
		if op == OpRunScript || op == OpOpenURL {
			t.Errorf("remote allowlist contains scripting operation %q", op)
		}
	}
	if len(remote) != len(AllOperations())-2 {
		t.Errorf("remote allowlist has %d operations, want all minus the scripting pair", len(remote))
	}
}

func TestRequiredPermissionsKnownOperationsOnly(t *testing.T) {
	for op := range requiredPermissions {
		if !KnownOperation(op) {
			t.Errorf("permission mapping references unknown operation %q", op)
		}
	}
}

func TestRequiredPermissionsByGroup(t *testing.T) {
	tests := []struct {
		op   Operation
		want []PermissionKind
	}{
		{OpCaptureScreen, []PermissionKind{PermissionScreenRecording}},
		{OpDetectElements, []PermissionKind{PermissionScreenRecording}},
		{OpClick, []PermissionKind{PermissionAccessibility}},
		{OpListWindows, []PermissionKind{PermissionAccessibility}},
		{OpDialogDismiss, []PermissionKind{PermissionAccessibility}},
		{OpRunScript, []PermissionKind{PermissionScripting}},
		{OpServerStatus, nil},
		{OpPing, nil},
		{OpListApps, nil},
		{OpReadClipboard, nil},
	}
	for _, tt := range tests {
		got := RequiredPermissions(tt.op)
		if len(got) != len(tt.want) {
			t.Errorf("RequiredPermissions(%s) = %v, want %v", tt.op, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RequiredPermissions(%s) = %v, want %v", tt.op, got, tt.want)
			}
		}
	}
}

func TestRequiredPermissionsReturnsCopy(t *testing.T) {
	first := RequiredPermissions(OpClick)
	first[0] = PermissionScripting
	if second := RequiredPermissions(OpClick); second[0] != PermissionAccessibility {
		t.Error("mutating a returned slice leaked into the mapping")
	}
}

func TestPermissionTags(t *testing.T) {
	tags := PermissionTags([]Operation{OpCaptureScreen, OpClick, OpPing})
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2 (ping requires nothing)", len(tags))
	}
	if tags["capture-screen"][0] != PermissionScreenRecording {
		t.Errorf("capture-screen tag = %v", tags["capture-screen"])
	}
	if tags["click"][0] != PermissionAccessibility {
		t.Errorf("click tag = %v", tags["click"])
	}
}
