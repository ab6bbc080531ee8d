// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "sort"

// Operation names one automation capability. The enumeration is
// closed: every Operation value corresponds to exactly one Request
// variant, and Operation values are never constructed independently
// of one: the request is the value, the operation is its
// discriminant.
type Operation string

// The full operation vocabulary, grouped the way the agent groups its
// services. Wire names are stable; renaming one is a protocol break.
const (
	// Screen capture.
	OpCaptureScreen    Operation = "capture-screen"
	OpCaptureWindow    Operation = "capture-window"
	OpCaptureFrontmost Operation = "capture-frontmost"
	OpCaptureArea      Operation = "capture-area"
	OpCaptureMenuBar   Operation = "capture-menu-bar"

	// Element detection and detection-session storage.
	OpDetectElements       Operation = "detect-elements"
	OpStoreDetectionResult Operation = "store-detection-result"
	OpFetchDetectionResult Operation = "fetch-detection-result"
	OpListSessions         Operation = "list-sessions"
	OpCleanSessions        Operation = "clean-sessions"

	// Pointer and keyboard input.
	OpClick     Operation = "click"
	OpTypeText  Operation = "type-text"
	OpPressKey  Operation = "press-key"
	OpHotkey    Operation = "hotkey"
	OpScroll    Operation = "scroll"
	OpSwipe     Operation = "swipe"
	OpDrag      Operation = "drag"
	OpMoveMouse Operation = "move-mouse"

	// Window manipulation.
	OpListWindows     Operation = "list-windows"
	OpFocusWindow     Operation = "focus-window"
	OpMoveWindow      Operation = "move-window"
	OpResizeWindow    Operation = "resize-window"
	OpSetWindowBounds Operation = "set-window-bounds"
	OpMinimizeWindow  Operation = "minimize-window"
	OpMaximizeWindow  Operation = "maximize-window"
	OpCloseWindow     Operation = "close-window"

	// Displays.
	OpListScreens Operation = "list-screens"

	// Application lifecycle and focus.
	OpListApps     Operation = "list-apps"
	OpLaunchApp    Operation = "launch-app"
	OpQuitApp      Operation = "quit-app"
	OpRelaunchApp  Operation = "relaunch-app"
	OpIsAppRunning Operation = "is-app-running"
	OpFocusApp     Operation = "focus-app"
	OpHideApp      Operation = "hide-app"
	OpUnhideApp    Operation = "unhide-app"

	// Menu bar.
	OpListMenus      Operation = "list-menus"
	OpClickMenuItem  Operation = "click-menu-item"
	OpListMenuExtras Operation = "list-menu-extras"
	OpClickMenuExtra Operation = "click-menu-extra"

	// Dock.
	OpListDock      Operation = "list-dock"
	OpClickDockItem Operation = "click-dock-item"
	OpHideDock      Operation = "hide-dock"
	OpShowDock      Operation = "show-dock"

	// Dialogs.
	OpListDialogs   Operation = "list-dialogs"
	OpDialogClick   Operation = "dialog-click"
	OpDialogInput   Operation = "dialog-input"
	OpDialogFile    Operation = "dialog-file"
	OpDialogDismiss Operation = "dialog-dismiss"

	// Virtual desktops / spaces.
	OpListSpaces        Operation = "list-spaces"
	OpSwitchSpace       Operation = "switch-space"
	OpMoveWindowToSpace Operation = "move-window-to-space"

	// Clipboard.
	OpReadClipboard  Operation = "read-clipboard"
	OpWriteClipboard Operation = "write-clipboard"
	OpClearClipboard Operation = "clear-clipboard"

	// Scripting. Excluded from the remote allowlist: arbitrary script
	// execution from another process is a privilege escalation, not an
	// automation primitive.
	OpRunScript Operation = "run-script"
	OpOpenURL   Operation = "open-url"

	// Agent status.
	OpServerStatus      Operation = "server-status"
	OpCheckPermissions  Operation = "check-permissions"
	OpRequestPermission Operation = "request-permission"
	OpPing              Operation = "ping"
)

// PermissionKind names an OS-level grant an operation may require.
type PermissionKind string

const (
	// PermissionScreenRecording gates reading pixel data from the
	// display server.
	PermissionScreenRecording PermissionKind = "screen-recording"

	// PermissionAccessibility gates synthesizing input and walking
	// other applications' UI trees.
	PermissionAccessibility PermissionKind = "accessibility"

	// PermissionScripting gates script execution and automation
	// control of other applications.
	PermissionScripting PermissionKind = "scripting"
)

// requiredPermissions maps each operation to the OS grants it needs.
// Operations absent from the map require none.
var requiredPermissions = map[Operation][]PermissionKind{
	OpCaptureScreen:    {PermissionScreenRecording},
	OpCaptureWindow:    {PermissionScreenRecording},
	OpCaptureFrontmost: {PermissionScreenRecording},
	OpCaptureArea:      {PermissionScreenRecording},
	OpCaptureMenuBar:   {PermissionScreenRecording},
	OpDetectElements:   {PermissionScreenRecording},

	OpClick:     {PermissionAccessibility},
	OpTypeText:  {PermissionAccessibility},
	OpPressKey:  {PermissionAccessibility},
	OpHotkey:    {PermissionAccessibility},
	OpScroll:    {PermissionAccessibility},
	OpSwipe:     {PermissionAccessibility},
	OpDrag:      {PermissionAccessibility},
	OpMoveMouse: {PermissionAccessibility},

	OpListWindows:     {PermissionAccessibility},
	OpFocusWindow:     {PermissionAccessibility},
	OpMoveWindow:      {PermissionAccessibility},
	OpResizeWindow:    {PermissionAccessibility},
	OpSetWindowBounds: {PermissionAccessibility},
	OpMinimizeWindow:  {PermissionAccessibility},
	OpMaximizeWindow:  {PermissionAccessibility},
	OpCloseWindow:     {PermissionAccessibility},

	OpFocusApp:  {PermissionAccessibility},
	OpHideApp:   {PermissionAccessibility},
	OpUnhideApp: {PermissionAccessibility},

	OpListMenus:      {PermissionAccessibility},
	OpClickMenuItem:  {PermissionAccessibility},
	OpListMenuExtras: {PermissionAccessibility},
	OpClickMenuExtra: {PermissionAccessibility},

	OpListDock:      {PermissionAccessibility},
	OpClickDockItem: {PermissionAccessibility},
	OpHideDock:      {PermissionAccessibility},
	OpShowDock:      {PermissionAccessibility},

	OpListDialogs:   {PermissionAccessibility},
	OpDialogClick:   {PermissionAccessibility},
	OpDialogInput:   {PermissionAccessibility},
	OpDialogFile:    {PermissionAccessibility},
	OpDialogDismiss: {PermissionAccessibility},

	OpListSpaces:        {PermissionAccessibility},
	OpSwitchSpace:       {PermissionAccessibility},
	OpMoveWindowToSpace: {PermissionAccessibility},

	OpRunScript: {PermissionScripting},
	OpOpenURL:   {PermissionScripting},
}

// RequiredPermissions returns the OS grants op needs. The returned
// slice is a copy; callers may modify it.
func RequiredPermissions(op Operation) []PermissionKind {
	kinds := requiredPermissions[op]
	if len(kinds) == 0 {
		return nil
	}
	out := make([]PermissionKind, len(kinds))
	copy(out, kinds)
	return out
}

// PermissionTags returns the required-permission map for the given
// operations, keyed by wire name. Operations requiring no permission
// are omitted. This is the map a handshake response carries.
func PermissionTags(ops []Operation) map[string][]PermissionKind {
	tags := make(map[string][]PermissionKind)
	for _, op := range ops {
		if kinds := RequiredPermissions(op); len(kinds) > 0 {
			tags[string(op)] = kinds
		}
	}
	return tags
}

// AllOperations returns every operation in the protocol, sorted by
// wire name. This is the implicit allowlist for embedded (in-process)
// hosting, where the caller already runs with the agent's privileges.
func AllOperations() []Operation {
	ops := make([]Operation, 0, len(operationRegistry))
	for op := range operationRegistry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// RemoteOperations returns the default allowlist for servers reachable
// from a separate process: every operation except the scripting group.
func RemoteOperations() []Operation {
	ops := AllOperations()
	filtered := ops[:0]
	for _, op := range ops {
		switch op {
		case OpRunScript, OpOpenURL:
			continue
		}
		filtered = append(filtered, op)
	}
	return filtered
}

// KnownOperation reports whether op is part of the protocol.
func KnownOperation(op Operation) bool {
	_, ok := operationRegistry[op]
	return ok
}
