// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// Response is the sealed union of protocol replies. Success variants
// parallel the request groups; ErrorResponse is the single failure
// variant, reachable from every operation. No success variant ever
// carries failure information.
type Response interface {
	// responseCase returns the wire discriminant for the envelope.
	responseCase() string

	// isResponse seals the union to this package.
	isResponse()
}

// OKResponse acknowledges an operation with no result payload.
type OKResponse struct{}

// BoolResponse carries a single yes/no answer (is-app-running,
// quit-app, request-permission).
type BoolResponse struct {
	Value bool `cbor:"value"`
}

// CaptureResponse carries the image produced by a capture operation.
type CaptureResponse struct {
	Capture CaptureData `cbor:"capture"`
}

// DetectionResponse carries a detection result (detect-elements,
// fetch-detection-result).
type DetectionResponse struct {
	Result DetectionResult `cbor:"result"`
}

// SessionsResponse lists stored detection sessions (list-sessions,
// and clean-sessions, where it holds the removed sessions).
type SessionsResponse struct {
	Sessions []SessionInfo `cbor:"sessions"`
}

// WindowsResponse carries the list-windows result.
type WindowsResponse struct {
	Data WindowListData `cbor:"data"`
}

// ScreensResponse lists attached displays.
type ScreensResponse struct {
	Screens []ScreenInfo `cbor:"screens"`
}

// AppsResponse lists running applications.
type AppsResponse struct {
	Applications []ApplicationInfo `cbor:"applications"`
}

// MenusResponse lists menus (list-menus, list-menu-extras).
type MenusResponse struct {
	Menus []MenuInfo `cbor:"menus"`
}

// DockResponse lists dock entries.
type DockResponse struct {
	Items []DockItem `cbor:"items"`
}

// DialogsResponse lists open dialogs.
type DialogsResponse struct {
	Dialogs []DialogInfo `cbor:"dialogs"`
}

// SpacesResponse lists virtual desktops.
type SpacesResponse struct {
	Spaces []SpaceInfo `cbor:"spaces"`
}

// TextResponse carries a single string (read-clipboard, run-script
// output, ping echo).
type TextResponse struct {
	Text string `cbor:"text"`
}

// StatusResponse carries the agent status (server-status,
// check-permissions).
type StatusResponse struct {
	Status ServerStatus `cbor:"status"`
}

// ErrorResponse is the terminal failure variant shared by all
// operations.
type ErrorResponse struct {
	Err ErrorEnvelope `cbor:"error"`
}

// Envelope unwraps the carried error as a *ErrorEnvelope.
func (r *ErrorResponse) Envelope() *ErrorEnvelope {
	envelope := r.Err
	return &envelope
}

func (OKResponse) responseCase() string        { return "ok" }
func (BoolResponse) responseCase() string      { return "bool" }
func (CaptureResponse) responseCase() string   { return "capture" }
func (DetectionResponse) responseCase() string { return "detection" }
func (SessionsResponse) responseCase() string  { return "sessions" }
func (WindowsResponse) responseCase() string   { return "windows" }
func (ScreensResponse) responseCase() string   { return "screens" }
func (AppsResponse) responseCase() string      { return "apps" }
func (MenusResponse) responseCase() string     { return "menus" }
func (DockResponse) responseCase() string      { return "dock" }
func (DialogsResponse) responseCase() string   { return "dialogs" }
func (SpacesResponse) responseCase() string    { return "spaces" }
func (TextResponse) responseCase() string      { return "text" }
func (StatusResponse) responseCase() string    { return "status" }
func (ErrorResponse) responseCase() string     { return "error" }

func (OKResponse) isResponse()        {}
func (BoolResponse) isResponse()      {}
func (CaptureResponse) isResponse()   {}
func (DetectionResponse) isResponse() {}
func (SessionsResponse) isResponse()  {}
func (WindowsResponse) isResponse()   {}
func (ScreensResponse) isResponse()   {}
func (AppsResponse) isResponse()      {}
func (MenusResponse) isResponse()     {}
func (DockResponse) isResponse()      {}
func (DialogsResponse) isResponse()   {}
func (SpacesResponse) isResponse()    {}
func (TextResponse) isResponse()      {}
func (StatusResponse) isResponse()    {}
func (ErrorResponse) isResponse()     {}
