// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "time"

// Point is a screen coordinate in display points.
type Point struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
}

// Rect is a screen rectangle in display points.
type Rect struct {
	X      int32 `cbor:"x"`
	Y      int32 `cbor:"y"`
	Width  int32 `cbor:"width"`
	Height int32 `cbor:"height"`
}

// WindowTarget selects a window. App is required; exactly one of
// Title, Index, or WindowID narrows the selection (Title matches by
// substring, Index 0 is the frontmost window). With none set, the
// frontmost window of the application is used.
type WindowTarget struct {
	// App identifies the owning application: name, bundle identifier,
	// or "PID:1234".
	App string `cbor:"app"`

	Title    string  `cbor:"title,omitempty"`
	Index    *int32  `cbor:"index,omitempty"`
	WindowID *uint32 `cbor:"window_id,omitempty"`
}

// ElementTarget selects a UI element for input operations. Query is a
// detection-session element ID ("B1", "T2") or a text query resolved
// against the accessibility tree; Coordinates bypasses element lookup
// entirely. SessionID scopes element IDs to a detection session.
type ElementTarget struct {
	Query       string `cbor:"query,omitempty"`
	Coordinates *Point `cbor:"coordinates,omitempty"`
	SessionID   string `cbor:"session_id,omitempty"`
}

// ImageFormat selects the capture output encoding.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "png"
	ImageFormatJPEG ImageFormat = "jpeg"
)

// MIMEType returns the MIME type for the format. Unknown formats
// report PNG, the capture default.
func (f ImageFormat) MIMEType() string {
	if f == ImageFormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// CaptureData is the result of a capture operation. Data holds the
// encoded image; when Compression is "zstd" the image bytes are
// zstd-compressed on the wire and the client decompresses them after
// decoding (lib/compress).
type CaptureData struct {
	Data        []byte `cbor:"data"`
	MIMEType    string `cbor:"mime_type"`
	Width       int32  `cbor:"width"`
	Height      int32  `cbor:"height"`
	Compression string `cbor:"compression,omitempty"`

	// DisplayIndex is set for screen captures, WindowTitle and
	// WindowID for window captures.
	DisplayIndex *int32  `cbor:"display_index,omitempty"`
	WindowTitle  string  `cbor:"window_title,omitempty"`
	WindowID     *uint32 `cbor:"window_id,omitempty"`
}

// DetectedElement is one actionable UI element found by detection.
// IDs use the detection-session convention: a role prefix (B for
// button, T for text field, L for link, G for generic) plus an index.
type DetectedElement struct {
	ID           string `cbor:"id"`
	Role         string `cbor:"role"`
	Label        string `cbor:"label,omitempty"`
	Value        string `cbor:"value,omitempty"`
	Bounds       Rect   `cbor:"bounds"`
	IsActionable bool   `cbor:"is_actionable"`
}

// DetectionResult is the element map produced by detect-elements and
// stored per session so later input operations can resolve element
// IDs without re-detecting.
type DetectionResult struct {
	SessionID string                     `cbor:"session_id"`
	Elements  map[string]DetectedElement `cbor:"elements"`
	CreatedAt time.Time                  `cbor:"created_at"`
}

// SessionInfo summarizes one stored detection session.
type SessionInfo struct {
	ID           string    `cbor:"id"`
	CreatedAt    time.Time `cbor:"created_at"`
	ElementCount int       `cbor:"element_count"`
}

// WindowInfo describes one window, following the shape the original
// window manager reports.
type WindowInfo struct {
	Title       string `cbor:"title"`
	WindowID    uint32 `cbor:"window_id"`
	Index       int32  `cbor:"index"`
	Bounds      Rect   `cbor:"bounds"`
	IsOnScreen  bool   `cbor:"is_on_screen"`
	IsMinimized bool   `cbor:"is_minimized,omitempty"`
	SpaceID     uint64 `cbor:"space_id,omitempty"`
}

// TargetApplicationInfo identifies the application whose windows a
// list-windows reply describes.
type TargetApplicationInfo struct {
	Name     string `cbor:"name"`
	BundleID string `cbor:"bundle_id,omitempty"`
	PID      int32  `cbor:"pid"`
}

// WindowListData is the list-windows result.
type WindowListData struct {
	Windows           []WindowInfo          `cbor:"windows"`
	TargetApplication TargetApplicationInfo `cbor:"target_application"`
}

// ApplicationInfo describes one running application.
type ApplicationInfo struct {
	Name        string `cbor:"name"`
	BundleID    string `cbor:"bundle_id,omitempty"`
	PID         int32  `cbor:"pid"`
	IsActive    bool   `cbor:"is_active"`
	IsHidden    bool   `cbor:"is_hidden,omitempty"`
	WindowCount int32  `cbor:"window_count"`
}

// ScreenInfo describes one attached display.
type ScreenInfo struct {
	Index       int32   `cbor:"index"`
	Name        string  `cbor:"name,omitempty"`
	Frame       Rect    `cbor:"frame"`
	ScaleFactor float64 `cbor:"scale_factor"`
	IsMain      bool    `cbor:"is_main"`
}

// MenuItem is one entry in an application menu. Children is populated
// for submenus.
type MenuItem struct {
	Title    string     `cbor:"title"`
	Enabled  bool       `cbor:"enabled"`
	Shortcut string     `cbor:"shortcut,omitempty"`
	Children []MenuItem `cbor:"children,omitempty"`
}

// MenuInfo is one top-level menu with its items.
type MenuInfo struct {
	Title string     `cbor:"title"`
	Items []MenuItem `cbor:"items,omitempty"`
}

// DockItemKind classifies dock entries.
type DockItemKind string

const (
	DockItemApp       DockItemKind = "app"
	DockItemFile      DockItemKind = "file"
	DockItemURL       DockItemKind = "url"
	DockItemSeparator DockItemKind = "separator"
)

// DockItem describes one dock entry.
type DockItem struct {
	Title     string       `cbor:"title"`
	Kind      DockItemKind `cbor:"kind"`
	Index     int32        `cbor:"index"`
	IsRunning bool         `cbor:"is_running,omitempty"`
}

// DialogInfo describes one open dialog or sheet.
type DialogInfo struct {
	Title      string   `cbor:"title"`
	Role       string   `cbor:"role,omitempty"`
	Buttons    []string `cbor:"buttons,omitempty"`
	TextFields []string `cbor:"text_fields,omitempty"`
}

// SpaceInfo describes one virtual desktop.
type SpaceInfo struct {
	ID           uint64 `cbor:"id"`
	Kind         string `cbor:"kind,omitempty"`
	IsActive     bool   `cbor:"is_active"`
	DisplayIndex int32  `cbor:"display_index"`
}

// PermissionStatus reports which OS grants the agent currently holds.
type PermissionStatus struct {
	ScreenRecording bool `cbor:"screen_recording"`
	Accessibility   bool `cbor:"accessibility"`
	Scripting       bool `cbor:"scripting"`
}

// ServerStatus is the server-status and check-permissions result.
type ServerStatus struct {
	Version       ProtocolVersion  `cbor:"protocol_version"`
	Build         string           `cbor:"build,omitempty"`
	HostKind      HostKind         `cbor:"host_kind"`
	Permissions   PermissionStatus `cbor:"permissions"`
	UptimeSeconds int64            `cbor:"uptime_seconds,omitempty"`
}
