// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"fmt"

	"github.com/peekaboo-foundation/peekaboo/lib/codec"
)

// Every message crosses the wire as a self-describing envelope:
// {case: "<discriminant>", payload: <cbor>}. Requests use the
// operation's wire name as the case; the handshake uses the reserved
// case "handshake"; responses use the response variant names plus
// "handshake" for the handshake reply.

// HandshakeCase is the reserved envelope discriminant for the
// handshake exchange in both directions.
const HandshakeCase = "handshake"

type envelope struct {
	Case    string           `cbor:"case"`
	Payload codec.RawMessage `cbor:"payload,omitempty"`
}

// decodeRequest decodes an envelope payload into a concrete Request
// variant. An empty payload decodes to the zero value, so
// parameterless operations may omit the payload entirely.
func decodeRequest[T any, PT interface {
	*T
	Request
}](payload []byte) (Request, error) {
	var value T
	if len(payload) > 0 {
		if err := codec.Unmarshal(payload, &value); err != nil {
			return nil, err
		}
	}
	return PT(&value), nil
}

func decodeResponse[T any, PT interface {
	*T
	Response
}](payload []byte) (Response, error) {
	var value T
	if len(payload) > 0 {
		if err := codec.Unmarshal(payload, &value); err != nil {
			return nil, err
		}
	}
	return PT(&value), nil
}

// operationRegistry is the single source of truth tying each
// operation's wire name to its request decoder. An operation missing
// here would be undecodable, so TestOperationRegistryComplete keeps
// the registry in lockstep with the enumeration.
var operationRegistry = map[Operation]func([]byte) (Request, error){
	OpCaptureScreen:        decodeRequest[CaptureScreenRequest],
	OpCaptureWindow:        decodeRequest[CaptureWindowRequest],
	OpCaptureFrontmost:     decodeRequest[CaptureFrontmostRequest],
	OpCaptureArea:          decodeRequest[CaptureAreaRequest],
	OpCaptureMenuBar:       decodeRequest[CaptureMenuBarRequest],
	OpDetectElements:       decodeRequest[DetectElementsRequest],
	OpStoreDetectionResult: decodeRequest[StoreDetectionResultRequest],
	OpFetchDetectionResult: decodeRequest[FetchDetectionResultRequest],
	OpListSessions:         decodeRequest[ListSessionsRequest],
	OpCleanSessions:        decodeRequest[CleanSessionsRequest],
	OpClick:                decodeRequest[ClickRequest],
	OpTypeText:             decodeRequest[TypeTextRequest],
	OpPressKey:             decodeRequest[PressKeyRequest],
	OpHotkey:               decodeRequest[HotkeyRequest],
	OpScroll:               decodeRequest[ScrollRequest],
	OpSwipe:                decodeRequest[SwipeRequest],
	OpDrag:                 decodeRequest[DragRequest],
	OpMoveMouse:            decodeRequest[MoveMouseRequest],
	OpListWindows:          decodeRequest[ListWindowsRequest],
	OpFocusWindow:          decodeRequest[FocusWindowRequest],
	OpMoveWindow:           decodeRequest[MoveWindowRequest],
	OpResizeWindow:         decodeRequest[ResizeWindowRequest],
	OpSetWindowBounds:      decodeRequest[SetWindowBoundsRequest],
	OpMinimizeWindow:       decodeRequest[MinimizeWindowRequest],
	OpMaximizeWindow:       decodeRequest[MaximizeWindowRequest],
	OpCloseWindow:          decodeRequest[CloseWindowRequest],
	OpListScreens:          decodeRequest[ListScreensRequest],
	OpListApps:             decodeRequest[ListAppsRequest],
	OpLaunchApp:            decodeRequest[LaunchAppRequest],
	OpQuitApp:              decodeRequest[QuitAppRequest],
	OpRelaunchApp:          decodeRequest[RelaunchAppRequest],
	OpIsAppRunning:         decodeRequest[IsAppRunningRequest],
	OpFocusApp:             decodeRequest[FocusAppRequest],
	OpHideApp:              decodeRequest[HideAppRequest],
	OpUnhideApp:            decodeRequest[UnhideAppRequest],
	OpListMenus:            decodeRequest[ListMenusRequest],
	OpClickMenuItem:        decodeRequest[ClickMenuItemRequest],
	OpListMenuExtras:       decodeRequest[ListMenuExtrasRequest],
	OpClickMenuExtra:       decodeRequest[ClickMenuExtraRequest],
	OpListDock:             decodeRequest[ListDockRequest],
	OpClickDockItem:        decodeRequest[ClickDockItemRequest],
	OpHideDock:             decodeRequest[HideDockRequest],
	OpShowDock:             decodeRequest[ShowDockRequest],
	OpListDialogs:          decodeRequest[ListDialogsRequest],
	OpDialogClick:          decodeRequest[DialogClickRequest],
	OpDialogInput:          decodeRequest[DialogInputRequest],
	OpDialogFile:           decodeRequest[DialogFileRequest],
	OpDialogDismiss:        decodeRequest[DialogDismissRequest],
	OpListSpaces:           decodeRequest[ListSpacesRequest],
	OpSwitchSpace:          decodeRequest[SwitchSpaceRequest],
	OpMoveWindowToSpace:    decodeRequest[MoveWindowToSpaceRequest],
	OpReadClipboard:        decodeRequest[ReadClipboardRequest],
	OpWriteClipboard:       decodeRequest[WriteClipboardRequest],
	OpClearClipboard:       decodeRequest[ClearClipboardRequest],
	OpRunScript:            decodeRequest[RunScriptRequest],
	OpOpenURL:              decodeRequest[OpenURLRequest],
	OpServerStatus:         decodeRequest[ServerStatusRequest],
	OpCheckPermissions:     decodeRequest[CheckPermissionsRequest],
	OpRequestPermission:    decodeRequest[RequestPermissionRequest],
	OpPing:                 decodeRequest[PingRequest],
}

// responseRegistry maps envelope cases to response decoders.
var responseRegistry = map[string]func([]byte) (Response, error){
	"ok":        decodeResponse[OKResponse],
	"bool":      decodeResponse[BoolResponse],
	"capture":   decodeResponse[CaptureResponse],
	"detection": decodeResponse[DetectionResponse],
	"sessions":  decodeResponse[SessionsResponse],
	"windows":   decodeResponse[WindowsResponse],
	"screens":   decodeResponse[ScreensResponse],
	"apps":      decodeResponse[AppsResponse],
	"menus":     decodeResponse[MenusResponse],
	"dock":      decodeResponse[DockResponse],
	"dialogs":   decodeResponse[DialogsResponse],
	"spaces":    decodeResponse[SpacesResponse],
	"text":      decodeResponse[TextResponse],
	"status":    decodeResponse[StatusResponse],
	"error":     decodeResponse[ErrorResponse],
}

// EncodeRequest serializes a request into its wire envelope.
func EncodeRequest(request Request) ([]byte, error) {
	payload, err := codec.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", request.Operation(), err)
	}
	return codec.Marshal(envelope{Case: string(request.Operation()), Payload: payload})
}

// EncodeHandshakeRequest serializes the handshake request envelope.
func EncodeHandshakeRequest(request *HandshakeRequest) ([]byte, error) {
	payload, err := codec.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding handshake payload: %w", err)
	}
	return codec.Marshal(envelope{Case: HandshakeCase, Payload: payload})
}

// DecodeRequestEnvelope decodes raw bytes into either an operation
// request or a handshake request; exactly one of the two returns is
// non-nil on success. Unknown cases and malformed payloads are plain
// errors; the server translates them into decoding-failed envelopes.
func DecodeRequestEnvelope(data []byte) (Request, *HandshakeRequest, error) {
	var env envelope
	if err := codec.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decoding request envelope: %w", err)
	}
	if env.Case == "" {
		return nil, nil, fmt.Errorf("request envelope has no case")
	}
	if env.Case == HandshakeCase {
		var handshake HandshakeRequest
		if err := codec.Unmarshal(env.Payload, &handshake); err != nil {
			return nil, nil, fmt.Errorf("decoding handshake payload: %w", err)
		}
		return nil, &handshake, nil
	}
	decode, ok := operationRegistry[Operation(env.Case)]
	if !ok {
		return nil, nil, fmt.Errorf("unknown request case %q", env.Case)
	}
	request, err := decode(env.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s payload: %w", env.Case, err)
	}
	return request, nil, nil
}

// EncodeResponse serializes a response into its wire envelope.
func EncodeResponse(response Response) ([]byte, error) {
	payload, err := codec.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("encoding %s response: %w", response.responseCase(), err)
	}
	return codec.Marshal(envelope{Case: response.responseCase(), Payload: payload})
}

// EncodeHandshakeResponse serializes the handshake reply envelope.
func EncodeHandshakeResponse(response *HandshakeResponse) ([]byte, error) {
	payload, err := codec.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("encoding handshake response: %w", err)
	}
	return codec.Marshal(envelope{Case: HandshakeCase, Payload: payload})
}

// DecodeResponseEnvelope decodes raw bytes into a response variant.
func DecodeResponseEnvelope(data []byte) (Response, error) {
	var env envelope
	if err := codec.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	decode, ok := responseRegistry[env.Case]
	if !ok {
		return nil, fmt.Errorf("unknown response case %q", env.Case)
	}
	response, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", env.Case, err)
	}
	return response, nil
}

// DecodeHandshakeReply decodes the server's reply to a handshake. A
// success reply carries the handshake case; a failure carries the
// error response case, returned here as the error.
func DecodeHandshakeReply(data []byte) (*HandshakeResponse, error) {
	var env envelope
	if err := codec.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding handshake reply: %w", err)
	}
	switch env.Case {
	case HandshakeCase:
		var response HandshakeResponse
		if err := codec.Unmarshal(env.Payload, &response); err != nil {
			return nil, fmt.Errorf("decoding handshake reply payload: %w", err)
		}
		return &response, nil
	case "error":
		var failure ErrorResponse
		if err := codec.Unmarshal(env.Payload, &failure); err != nil {
			return nil, fmt.Errorf("decoding handshake error payload: %w", err)
		}
		return nil, failure.Envelope()
	default:
		return nil, fmt.Errorf("unexpected handshake reply case %q", env.Case)
	}
}
