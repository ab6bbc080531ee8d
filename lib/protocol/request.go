// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// Request is the sealed union of protocol calls: one variant per
// Operation. Operation is a pure, total projection; the router
// consults nothing else when deciding whether a request may dispatch.
//
// HandshakeRequest is deliberately not part of this union; it travels
// under its own envelope case and bypasses the allowlist.
type Request interface {
	// Operation returns the discriminant gating this request.
	Operation() Operation

	// isRequest seals the union to this package so the server's
	// dispatch switch stays exhaustive.
	isRequest()
}

// Screen capture.

type CaptureScreenRequest struct {
	// DisplayIndex selects a display; nil captures the main display.
	DisplayIndex *int32      `cbor:"display_index,omitempty"`
	Format       ImageFormat `cbor:"format,omitempty"`
	Compress     bool        `cbor:"compress,omitempty"`
}

type CaptureWindowRequest struct {
	Target   WindowTarget `cbor:"target"`
	Format   ImageFormat  `cbor:"format,omitempty"`
	Compress bool         `cbor:"compress,omitempty"`
}

type CaptureFrontmostRequest struct {
	Format   ImageFormat `cbor:"format,omitempty"`
	Compress bool        `cbor:"compress,omitempty"`
}

type CaptureAreaRequest struct {
	Area     Rect        `cbor:"area"`
	Format   ImageFormat `cbor:"format,omitempty"`
	Compress bool        `cbor:"compress,omitempty"`
}

type CaptureMenuBarRequest struct {
	Format   ImageFormat `cbor:"format,omitempty"`
	Compress bool        `cbor:"compress,omitempty"`
}

// Element detection and session storage.

type DetectElementsRequest struct {
	// ImageData is an already-captured screenshot to detect against.
	// Empty means "capture the screen first, then detect".
	ImageData []byte `cbor:"image_data,omitempty"`

	// SessionID names the detection session the result is stored
	// under. Empty lets the server mint one.
	SessionID string `cbor:"session_id,omitempty"`

	IncludeNonActionable bool `cbor:"include_non_actionable,omitempty"`
}

type StoreDetectionResultRequest struct {
	Result DetectionResult `cbor:"result"`
}

type FetchDetectionResultRequest struct {
	SessionID string `cbor:"session_id"`
}

type ListSessionsRequest struct{}

type CleanSessionsRequest struct {
	// OlderThanSeconds removes sessions created more than this many
	// seconds ago. Zero removes everything.
	OlderThanSeconds int64 `cbor:"older_than_seconds,omitempty"`
	DryRun           bool  `cbor:"dry_run,omitempty"`
}

// Pointer and keyboard input.

// ClickType selects the click gesture.
type ClickType string

const (
	ClickSingle ClickType = "single"
	ClickDouble ClickType = "double"
	ClickRight  ClickType = "right"
)

type ClickRequest struct {
	Target    ElementTarget `cbor:"target"`
	ClickType ClickType     `cbor:"click_type,omitempty"`
}

type TypeTextRequest struct {
	Text string `cbor:"text"`

	// Target optionally focuses an element before typing.
	Target *ElementTarget `cbor:"target,omitempty"`

	// DelayMS is the per-keystroke delay in milliseconds.
	DelayMS       int32 `cbor:"delay_ms,omitempty"`
	ClearExisting bool  `cbor:"clear_existing,omitempty"`
}

type PressKeyRequest struct {
	// Keys are key names pressed in sequence ("return", "tab", "f5").
	Keys   []string `cbor:"keys"`
	Repeat int32    `cbor:"repeat,omitempty"`
}

type HotkeyRequest struct {
	// Modifiers are held while Key is pressed ("cmd", "shift", ...).
	Modifiers []string `cbor:"modifiers"`
	Key       string   `cbor:"key"`
}

type ScrollRequest struct {
	// Direction is "up", "down", "left", or "right".
	Direction string         `cbor:"direction"`
	Amount    int32          `cbor:"amount,omitempty"`
	Target    *ElementTarget `cbor:"target,omitempty"`
}

type SwipeRequest struct {
	From       Point `cbor:"from"`
	To         Point `cbor:"to"`
	DurationMS int32 `cbor:"duration_ms,omitempty"`
}

type DragRequest struct {
	From       ElementTarget `cbor:"from"`
	To         ElementTarget `cbor:"to"`
	DurationMS int32         `cbor:"duration_ms,omitempty"`
	Modifiers  []string      `cbor:"modifiers,omitempty"`
}

type MoveMouseRequest struct {
	Position Point `cbor:"position"`
	Smooth   bool  `cbor:"smooth,omitempty"`
}

// Window manipulation.

type ListWindowsRequest struct {
	// App identifies the application whose windows to list.
	App string `cbor:"app"`

	// IncludeDetails requests optional per-window fields: "bounds",
	// "ids", "off_screen".
	IncludeDetails []string `cbor:"include_details,omitempty"`
}

type FocusWindowRequest struct {
	Target WindowTarget `cbor:"target"`
}

type MoveWindowRequest struct {
	Target   WindowTarget `cbor:"target"`
	Position Point        `cbor:"position"`
}

type ResizeWindowRequest struct {
	Target WindowTarget `cbor:"target"`
	Width  int32        `cbor:"width"`
	Height int32        `cbor:"height"`
}

type SetWindowBoundsRequest struct {
	Target WindowTarget `cbor:"target"`
	Bounds Rect         `cbor:"bounds"`
}

type MinimizeWindowRequest struct {
	Target WindowTarget `cbor:"target"`
}

type MaximizeWindowRequest struct {
	Target WindowTarget `cbor:"target"`
}

type CloseWindowRequest struct {
	Target WindowTarget `cbor:"target"`
}

// Displays.

type ListScreensRequest struct{}

// Application lifecycle and focus.

type ListAppsRequest struct{}

type LaunchAppRequest struct {
	// Identifier is an application name, bundle identifier, or path.
	Identifier    string `cbor:"identifier"`
	WaitForLaunch bool   `cbor:"wait_for_launch,omitempty"`
}

type QuitAppRequest struct {
	App   string `cbor:"app"`
	Force bool   `cbor:"force,omitempty"`
}

type RelaunchAppRequest struct {
	App           string `cbor:"app"`
	WaitForLaunch bool   `cbor:"wait_for_launch,omitempty"`
}

type IsAppRunningRequest struct {
	App string `cbor:"app"`
}

type FocusAppRequest struct {
	App string `cbor:"app"`
}

type HideAppRequest struct {
	App string `cbor:"app"`
}

type UnhideAppRequest struct {
	App string `cbor:"app"`
}

// Menu bar.

type ListMenusRequest struct {
	App             string `cbor:"app"`
	IncludeDisabled bool   `cbor:"include_disabled,omitempty"`
}

type ClickMenuItemRequest struct {
	App string `cbor:"app"`

	// ItemPath walks the menu hierarchy, e.g. ["File", "Export",
	// "PDF…"].
	ItemPath []string `cbor:"item_path"`
}

type ListMenuExtrasRequest struct{}

type ClickMenuExtraRequest struct {
	Title string `cbor:"title"`
	Item  string `cbor:"item,omitempty"`
}

// Dock.

type ListDockRequest struct {
	IncludeAll bool `cbor:"include_all,omitempty"`
}

type ClickDockItemRequest struct {
	Title      string `cbor:"title"`
	RightClick bool   `cbor:"right_click,omitempty"`
}

type HideDockRequest struct{}

type ShowDockRequest struct{}

// Dialogs.

type ListDialogsRequest struct {
	App string `cbor:"app,omitempty"`
}

type DialogClickRequest struct {
	Button      string `cbor:"button"`
	WindowTitle string `cbor:"window_title,omitempty"`
}

type DialogInputRequest struct {
	Text        string `cbor:"text"`
	Field       string `cbor:"field,omitempty"`
	WindowTitle string `cbor:"window_title,omitempty"`
	PressReturn bool   `cbor:"press_return,omitempty"`
}

type DialogFileRequest struct {
	Path   string `cbor:"path"`
	Name   string `cbor:"name,omitempty"`
	Select bool   `cbor:"select,omitempty"`
}

type DialogDismissRequest struct {
	Force       bool   `cbor:"force,omitempty"`
	WindowTitle string `cbor:"window_title,omitempty"`
}

// Virtual desktops / spaces.

type ListSpacesRequest struct{}

type SwitchSpaceRequest struct {
	SpaceID uint64 `cbor:"space_id"`
}

type MoveWindowToSpaceRequest struct {
	Target      WindowTarget `cbor:"target"`
	SpaceID     uint64       `cbor:"space_id"`
	FollowFocus bool         `cbor:"follow_focus,omitempty"`
}

// Clipboard.

type ReadClipboardRequest struct{}

type WriteClipboardRequest struct {
	Text string `cbor:"text"`
}

type ClearClipboardRequest struct{}

// Scripting.

type RunScriptRequest struct {
	// Language is "applescript", "javascript", or "shell".
	Language  string `cbor:"language"`
	Source    string `cbor:"source"`
	TimeoutMS int32  `cbor:"timeout_ms,omitempty"`
}

type OpenURLRequest struct {
	URL string `cbor:"url"`
}

// Agent status.

type ServerStatusRequest struct{}

type CheckPermissionsRequest struct{}

type RequestPermissionRequest struct {
	Kind PermissionKind `cbor:"kind"`
}

type PingRequest struct {
	Message string `cbor:"message,omitempty"`
}

// Operation projections. One per variant; the compiler keeps this
// list in lockstep with the union because a variant without a
// projection does not satisfy Request.

func (CaptureScreenRequest) Operation() Operation        { return OpCaptureScreen }
func (CaptureWindowRequest) Operation() Operation        { return OpCaptureWindow }
func (CaptureFrontmostRequest) Operation() Operation     { return OpCaptureFrontmost }
func (CaptureAreaRequest) Operation() Operation          { return OpCaptureArea }
func (CaptureMenuBarRequest) Operation() Operation       { return OpCaptureMenuBar }
func (DetectElementsRequest) Operation() Operation       { return OpDetectElements }
func (StoreDetectionResultRequest) Operation() Operation { return OpStoreDetectionResult }
func (FetchDetectionResultRequest) Operation() Operation { return OpFetchDetectionResult }
func (ListSessionsRequest) Operation() Operation         { return OpListSessions }
func (CleanSessionsRequest) Operation() Operation        { return OpCleanSessions }
func (ClickRequest) Operation() Operation                { return OpClick }
func (TypeTextRequest) Operation() Operation             { return OpTypeText }
func (PressKeyRequest) Operation() Operation             { return OpPressKey }
func (HotkeyRequest) Operation() Operation               { return OpHotkey }
func (ScrollRequest) Operation() Operation               { return OpScroll }
func (SwipeRequest) Operation() Operation                { return OpSwipe }
func (DragRequest) Operation() Operation                 { return OpDrag }
func (MoveMouseRequest) Operation() Operation            { return OpMoveMouse }
func (ListWindowsRequest) Operation() Operation          { return OpListWindows }
func (FocusWindowRequest) Operation() Operation          { return OpFocusWindow }
func (MoveWindowRequest) Operation() Operation           { return OpMoveWindow }
func (ResizeWindowRequest) Operation() Operation         { return OpResizeWindow }
func (SetWindowBoundsRequest) Operation() Operation      { return OpSetWindowBounds }
func (MinimizeWindowRequest) Operation() Operation       { return OpMinimizeWindow }
func (MaximizeWindowRequest) Operation() Operation       { return OpMaximizeWindow }
func (CloseWindowRequest) Operation() Operation          { return OpCloseWindow }
func (ListScreensRequest) Operation() Operation          { return OpListScreens }
func (ListAppsRequest) Operation() Operation             { return OpListApps }
func (LaunchAppRequest) Operation() Operation            { return OpLaunchApp }
func (QuitAppRequest) Operation() Operation              { return OpQuitApp }
func (RelaunchAppRequest) Operation() Operation          { return OpRelaunchApp }
func (IsAppRunningRequest) Operation() Operation         { return OpIsAppRunning }
func (FocusAppRequest) Operation() Operation             { return OpFocusApp }
func (HideAppRequest) Operation() Operation              { return OpHideApp }
func (UnhideAppRequest) Operation() Operation            { return OpUnhideApp }
func (ListMenusRequest) Operation() Operation            { return OpListMenus }
func (ClickMenuItemRequest) Operation() Operation        { return OpClickMenuItem }
func (ListMenuExtrasRequest) Operation() Operation       { return OpListMenuExtras }
func (ClickMenuExtraRequest) Operation() Operation       { return OpClickMenuExtra }
func (ListDockRequest) Operation() Operation             { return OpListDock }
func (ClickDockItemRequest) Operation() Operation        { return OpClickDockItem }
func (HideDockRequest) Operation() Operation             { return OpHideDock }
func (ShowDockRequest) Operation() Operation             { return OpShowDock }
func (ListDialogsRequest) Operation() Operation          { return OpListDialogs }
func (DialogClickRequest) Operation() Operation          { return OpDialogClick }
func (DialogInputRequest) Operation() Operation          { return OpDialogInput }
func (DialogFileRequest) Operation() Operation           { return OpDialogFile }
func (DialogDismissRequest) Operation() Operation        { return OpDialogDismiss }
func (ListSpacesRequest) Operation() Operation           { return OpListSpaces }
func (SwitchSpaceRequest) Operation() Operation          { return OpSwitchSpace }
func (MoveWindowToSpaceRequest) Operation() Operation    { return OpMoveWindowToSpace }
func (ReadClipboardRequest) Operation() Operation        { return OpReadClipboard }
func (WriteClipboardRequest) Operation() Operation       { return OpWriteClipboard }
func (ClearClipboardRequest) Operation() Operation       { return OpClearClipboard }
func (RunScriptRequest) Operation() Operation            { return OpRunScript }
func (OpenURLRequest) Operation() Operation              { return OpOpenURL }
func (ServerStatusRequest) Operation() Operation         { return OpServerStatus }
func (CheckPermissionsRequest) Operation() Operation     { return OpCheckPermissions }
func (RequestPermissionRequest) Operation() Operation    { return OpRequestPermission }
func (PingRequest) Operation() Operation                 { return OpPing }

func (CaptureScreenRequest) isRequest()        {}
func (CaptureWindowRequest) isRequest()        {}
func (CaptureFrontmostRequest) isRequest()     {}
func (CaptureAreaRequest) isRequest()          {}
func (CaptureMenuBarRequest) isRequest()       {}
func (DetectElementsRequest) isRequest()       {}
func (StoreDetectionResultRequest) isRequest() {}
func (FetchDetectionResultRequest) isRequest() {}
func (ListSessionsRequest) isRequest()         {}
func (CleanSessionsRequest) isRequest()        {}
func (ClickRequest) isRequest()                {}
func (TypeTextRequest) isRequest()             {}
func (PressKeyRequest) isRequest()             {}
func (HotkeyRequest) isRequest()               {}
func (ScrollRequest) isRequest()               {}
func (SwipeRequest) isRequest()                {}
func (DragRequest) isRequest()                 {}
func (MoveMouseRequest) isRequest()            {}
func (ListWindowsRequest) isRequest()          {}
func (FocusWindowRequest) isRequest()          {}
func (MoveWindowRequest) isRequest()           {}
func (ResizeWindowRequest) isRequest()         {}
func (SetWindowBoundsRequest) isRequest()      {}
func (MinimizeWindowRequest) isRequest()       {}
func (MaximizeWindowRequest) isRequest()       {}
func (CloseWindowRequest) isRequest()          {}
func (ListScreensRequest) isRequest()          {}
func (ListAppsRequest) isRequest()             {}
func (LaunchAppRequest) isRequest()            {}
func (QuitAppRequest) isRequest()              {}
func (RelaunchAppRequest) isRequest()          {}
func (IsAppRunningRequest) isRequest()         {}
func (FocusAppRequest) isRequest()             {}
func (HideAppRequest) isRequest()              {}
func (UnhideAppRequest) isRequest()            {}
func (ListMenusRequest) isRequest()            {}
func (ClickMenuItemRequest) isRequest()        {}
func (ListMenuExtrasRequest) isRequest()       {}
func (ClickMenuExtraRequest) isRequest()       {}
func (ListDockRequest) isRequest()             {}
func (ClickDockItemRequest) isRequest()        {}
func (HideDockRequest) isRequest()             {}
func (ShowDockRequest) isRequest()             {}
func (ListDialogsRequest) isRequest()          {}
func (DialogClickRequest) isRequest()          {}
func (DialogInputRequest) isRequest()          {}
func (DialogFileRequest) isRequest()           {}
func (DialogDismissRequest) isRequest()        {}
func (ListSpacesRequest) isRequest()           {}
func (SwitchSpaceRequest) isRequest()          {}
func (MoveWindowToSpaceRequest) isRequest()    {}
func (ReadClipboardRequest) isRequest()        {}
func (WriteClipboardRequest) isRequest()       {}
func (ClearClipboardRequest) isRequest()       {}
func (RunScriptRequest) isRequest()            {}
func (OpenURLRequest) isRequest()              {}
func (ServerStatusRequest) isRequest()         {}
func (CheckPermissionsRequest) isRequest()     {}
func (RequestPermissionRequest) isRequest()    {}
func (PingRequest) isRequest()                 {}
