// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/peekaboo-foundation/peekaboo/lib/compress"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Typed projections over Send, one per operation. Each asserts the
// response variant its operation produces; an unexpected-but-valid
// variant is reported as invalid-request naming the operation.

// unpackedCapture decompresses a capture payload the server shipped
// compressed. Untagged captures pass through untouched.
func unpackedCapture(operation protocol.Operation, response *protocol.CaptureResponse) (*protocol.CaptureData, error) {
	if err := compress.UnpackCapture(&response.Capture); err != nil {
		return nil, protocol.Errorf(protocol.CodeDecodingFailed, "unpacking %s capture: %v", operation, err)
	}
	return &response.Capture, nil
}

func (c *Client) CaptureScreen(ctx context.Context, request *protocol.CaptureScreenRequest) (*protocol.CaptureData, error) {
	response, err := call[protocol.CaptureResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return unpackedCapture(request.Operation(), response)
}

func (c *Client) CaptureWindow(ctx context.Context, request *protocol.CaptureWindowRequest) (*protocol.CaptureData, error) {
	response, err := call[protocol.CaptureResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return unpackedCapture(request.Operation(), response)
}

func (c *Client) CaptureFrontmost(ctx context.Context, request *protocol.CaptureFrontmostRequest) (*protocol.CaptureData, error) {
	response, err := call[protocol.CaptureResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return unpackedCapture(request.Operation(), response)
}

func (c *Client) CaptureArea(ctx context.Context, request *protocol.CaptureAreaRequest) (*protocol.CaptureData, error) {
	response, err := call[protocol.CaptureResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return unpackedCapture(request.Operation(), response)
}

func (c *Client) CaptureMenuBar(ctx context.Context, request *protocol.CaptureMenuBarRequest) (*protocol.CaptureData, error) {
	response, err := call[protocol.CaptureResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return unpackedCapture(request.Operation(), response)
}

func (c *Client) DetectElements(ctx context.Context, request *protocol.DetectElementsRequest) (*protocol.DetectionResult, error) {
	response, err := call[protocol.DetectionResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return &response.Result, nil
}

func (c *Client) StoreDetectionResult(ctx context.Context, request *protocol.StoreDetectionResultRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) FetchDetectionResult(ctx context.Context, request *protocol.FetchDetectionResultRequest) (*protocol.DetectionResult, error) {
	response, err := call[protocol.DetectionResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return &response.Result, nil
}

func (c *Client) ListSessions(ctx context.Context, request *protocol.ListSessionsRequest) ([]protocol.SessionInfo, error) {
	response, err := call[protocol.SessionsResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Sessions, nil
}

func (c *Client) CleanSessions(ctx context.Context, request *protocol.CleanSessionsRequest) ([]protocol.SessionInfo, error) {
	response, err := call[protocol.SessionsResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Sessions, nil
}

func (c *Client) Click(ctx context.Context, request *protocol.ClickRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) TypeText(ctx context.Context, request *protocol.TypeTextRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) PressKey(ctx context.Context, request *protocol.PressKeyRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) Hotkey(ctx context.Context, request *protocol.HotkeyRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) Scroll(ctx context.Context, request *protocol.ScrollRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) Swipe(ctx context.Context, request *protocol.SwipeRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) Drag(ctx context.Context, request *protocol.DragRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) MoveMouse(ctx context.Context, request *protocol.MoveMouseRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListWindows(ctx context.Context, request *protocol.ListWindowsRequest) (*protocol.WindowListData, error) {
	response, err := call[protocol.WindowsResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *Client) FocusWindow(ctx context.Context, request *protocol.FocusWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) MoveWindow(ctx context.Context, request *protocol.MoveWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ResizeWindow(ctx context.Context, request *protocol.ResizeWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) SetWindowBounds(ctx context.Context, request *protocol.SetWindowBoundsRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) MinimizeWindow(ctx context.Context, request *protocol.MinimizeWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) MaximizeWindow(ctx context.Context, request *protocol.MaximizeWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) CloseWindow(ctx context.Context, request *protocol.CloseWindowRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListScreens(ctx context.Context, request *protocol.ListScreensRequest) ([]protocol.ScreenInfo, error) {
	response, err := call[protocol.ScreensResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Screens, nil
}

func (c *Client) ListApps(ctx context.Context, request *protocol.ListAppsRequest) ([]protocol.ApplicationInfo, error) {
	response, err := call[protocol.AppsResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Applications, nil
}

func (c *Client) LaunchApp(ctx context.Context, request *protocol.LaunchAppRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) QuitApp(ctx context.Context, request *protocol.QuitAppRequest) (bool, error) {
	response, err := call[protocol.BoolResponse](ctx, c, request)
	if err != nil {
		return false, err
	}
	return response.Value, nil
}

func (c *Client) RelaunchApp(ctx context.Context, request *protocol.RelaunchAppRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) IsAppRunning(ctx context.Context, request *protocol.IsAppRunningRequest) (bool, error) {
	response, err := call[protocol.BoolResponse](ctx, c, request)
	if err != nil {
		return false, err
	}
	return response.Value, nil
}

func (c *Client) FocusApp(ctx context.Context, request *protocol.FocusAppRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) HideApp(ctx context.Context, request *protocol.HideAppRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) UnhideApp(ctx context.Context, request *protocol.UnhideAppRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListMenus(ctx context.Context, request *protocol.ListMenusRequest) ([]protocol.MenuInfo, error) {
	response, err := call[protocol.MenusResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Menus, nil
}

func (c *Client) ClickMenuItem(ctx context.Context, request *protocol.ClickMenuItemRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListMenuExtras(ctx context.Context, request *protocol.ListMenuExtrasRequest) ([]protocol.MenuInfo, error) {
	response, err := call[protocol.MenusResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Menus, nil
}

func (c *Client) ClickMenuExtra(ctx context.Context, request *protocol.ClickMenuExtraRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListDock(ctx context.Context, request *protocol.ListDockRequest) ([]protocol.DockItem, error) {
	response, err := call[protocol.DockResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

func (c *Client) ClickDockItem(ctx context.Context, request *protocol.ClickDockItemRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) HideDock(ctx context.Context, request *protocol.HideDockRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ShowDock(ctx context.Context, request *protocol.ShowDockRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListDialogs(ctx context.Context, request *protocol.ListDialogsRequest) ([]protocol.DialogInfo, error) {
	response, err := call[protocol.DialogsResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Dialogs, nil
}

func (c *Client) DialogClick(ctx context.Context, request *protocol.DialogClickRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) DialogInput(ctx context.Context, request *protocol.DialogInputRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) DialogFile(ctx context.Context, request *protocol.DialogFileRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) DialogDismiss(ctx context.Context, request *protocol.DialogDismissRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ListSpaces(ctx context.Context, request *protocol.ListSpacesRequest) ([]protocol.SpaceInfo, error) {
	response, err := call[protocol.SpacesResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return response.Spaces, nil
}

func (c *Client) SwitchSpace(ctx context.Context, request *protocol.SwitchSpaceRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) MoveWindowToSpace(ctx context.Context, request *protocol.MoveWindowToSpaceRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ReadClipboard(ctx context.Context, request *protocol.ReadClipboardRequest) (string, error) {
	response, err := call[protocol.TextResponse](ctx, c, request)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

func (c *Client) WriteClipboard(ctx context.Context, request *protocol.WriteClipboardRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ClearClipboard(ctx context.Context, request *protocol.ClearClipboardRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) RunScript(ctx context.Context, request *protocol.RunScriptRequest) (string, error) {
	response, err := call[protocol.TextResponse](ctx, c, request)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

func (c *Client) OpenURL(ctx context.Context, request *protocol.OpenURLRequest) error {
	return c.sendExpectOK(ctx, request)
}

func (c *Client) ServerStatus(ctx context.Context, request *protocol.ServerStatusRequest) (*protocol.ServerStatus, error) {
	response, err := call[protocol.StatusResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return &response.Status, nil
}

func (c *Client) CheckPermissions(ctx context.Context, request *protocol.CheckPermissionsRequest) (*protocol.ServerStatus, error) {
	response, err := call[protocol.StatusResponse](ctx, c, request)
	if err != nil {
		return nil, err
	}
	return &response.Status, nil
}

func (c *Client) RequestPermission(ctx context.Context, request *protocol.RequestPermissionRequest) (bool, error) {
	response, err := call[protocol.BoolResponse](ctx, c, request)
	if err != nil {
		return false, err
	}
	return response.Value, nil
}

func (c *Client) Ping(ctx context.Context, request *protocol.PingRequest) (string, error) {
	response, err := call[protocol.TextResponse](ctx, c, request)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}
