// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Provider is the collaborator that actually performs automation
// operations. The server owns whether a request reaches a method and
// how failures travel back; the provider owns what the operation
// does. One method per operation, mirroring the Request union.
//
// Methods are invoked concurrently across connections; a provider is
// responsible for its own internal synchronization. A method may
// return a *protocol.ErrorEnvelope (directly or wrapped) to control
// the code the client sees; any other error is reported as
// internal-error.
type Provider interface {
	CaptureScreen(ctx context.Context, request *protocol.CaptureScreenRequest) (*protocol.CaptureData, error)
	CaptureWindow(ctx context.Context, request *protocol.CaptureWindowRequest) (*protocol.CaptureData, error)
	CaptureFrontmost(ctx context.Context, request *protocol.CaptureFrontmostRequest) (*protocol.CaptureData, error)
	CaptureArea(ctx context.Context, request *protocol.CaptureAreaRequest) (*protocol.CaptureData, error)
	CaptureMenuBar(ctx context.Context, request *protocol.CaptureMenuBarRequest) (*protocol.CaptureData, error)

	DetectElements(ctx context.Context, request *protocol.DetectElementsRequest) (*protocol.DetectionResult, error)
	StoreDetectionResult(ctx context.Context, request *protocol.StoreDetectionResultRequest) error
	FetchDetectionResult(ctx context.Context, request *protocol.FetchDetectionResultRequest) (*protocol.DetectionResult, error)
	ListSessions(ctx context.Context, request *protocol.ListSessionsRequest) ([]protocol.SessionInfo, error)
	CleanSessions(ctx context.Context, request *protocol.CleanSessionsRequest) ([]protocol.SessionInfo, error)

	Click(ctx context.Context, request *protocol.ClickRequest) error
	TypeText(ctx context.Context, request *protocol.TypeTextRequest) error
	PressKey(ctx context.Context, request *protocol.PressKeyRequest) error
	Hotkey(ctx context.Context, request *protocol.HotkeyRequest) error
	Scroll(ctx context.Context, request *protocol.ScrollRequest) error
	Swipe(ctx context.Context, request *protocol.SwipeRequest) error
	Drag(ctx context.Context, request *protocol.DragRequest) error
	MoveMouse(ctx context.Context, request *protocol.MoveMouseRequest) error

	ListWindows(ctx context.Context, request *protocol.ListWindowsRequest) (*protocol.WindowListData, error)
	FocusWindow(ctx context.Context, request *protocol.FocusWindowRequest) error
	MoveWindow(ctx context.Context, request *protocol.MoveWindowRequest) error
	ResizeWindow(ctx context.Context, request *protocol.ResizeWindowRequest) error
	SetWindowBounds(ctx context.Context, request *protocol.SetWindowBoundsRequest) error
	MinimizeWindow(ctx context.Context, request *protocol.MinimizeWindowRequest) error
	MaximizeWindow(ctx context.Context, request *protocol.MaximizeWindowRequest) error
	CloseWindow(ctx context.Context, request *protocol.CloseWindowRequest) error

	ListScreens(ctx context.Context, request *protocol.ListScreensRequest) ([]protocol.ScreenInfo, error)

	ListApps(ctx context.Context, request *protocol.ListAppsRequest) ([]protocol.ApplicationInfo, error)
	LaunchApp(ctx context.Context, request *protocol.LaunchAppRequest) error
	QuitApp(ctx context.Context, request *protocol.QuitAppRequest) (bool, error)
	RelaunchApp(ctx context.Context, request *protocol.RelaunchAppRequest) error
	IsAppRunning(ctx context.Context, request *protocol.IsAppRunningRequest) (bool, error)
	FocusApp(ctx context.Context, request *protocol.FocusAppRequest) error
	HideApp(ctx context.Context, request *protocol.HideAppRequest) error
	UnhideApp(ctx context.Context, request *protocol.UnhideAppRequest) error

	ListMenus(ctx context.Context, request *protocol.ListMenusRequest) ([]protocol.MenuInfo, error)
	ClickMenuItem(ctx context.Context, request *protocol.ClickMenuItemRequest) error
	ListMenuExtras(ctx context.Context, request *protocol.ListMenuExtrasRequest) ([]protocol.MenuInfo, error)
	ClickMenuExtra(ctx context.Context, request *protocol.ClickMenuExtraRequest) error

	ListDock(ctx context.Context, request *protocol.ListDockRequest) ([]protocol.DockItem, error)
	ClickDockItem(ctx context.Context, request *protocol.ClickDockItemRequest) error
	HideDock(ctx context.Context, request *protocol.HideDockRequest) error
	ShowDock(ctx context.Context, request *protocol.ShowDockRequest) error

	ListDialogs(ctx context.Context, request *protocol.ListDialogsRequest) ([]protocol.DialogInfo, error)
	DialogClick(ctx context.Context, request *protocol.DialogClickRequest) error
	DialogInput(ctx context.Context, request *protocol.DialogInputRequest) error
	DialogFile(ctx context.Context, request *protocol.DialogFileRequest) error
	DialogDismiss(ctx context.Context, request *protocol.DialogDismissRequest) error

	ListSpaces(ctx context.Context, request *protocol.ListSpacesRequest) ([]protocol.SpaceInfo, error)
	SwitchSpace(ctx context.Context, request *protocol.SwitchSpaceRequest) error
	MoveWindowToSpace(ctx context.Context, request *protocol.MoveWindowToSpaceRequest) error

	ReadClipboard(ctx context.Context, request *protocol.ReadClipboardRequest) (string, error)
	WriteClipboard(ctx context.Context, request *protocol.WriteClipboardRequest) error
	ClearClipboard(ctx context.Context, request *protocol.ClearClipboardRequest) error

	RunScript(ctx context.Context, request *protocol.RunScriptRequest) (string, error)
	OpenURL(ctx context.Context, request *protocol.OpenURLRequest) error

	ServerStatus(ctx context.Context, request *protocol.ServerStatusRequest) (*protocol.ServerStatus, error)
	CheckPermissions(ctx context.Context, request *protocol.CheckPermissionsRequest) (*protocol.ServerStatus, error)
	RequestPermission(ctx context.Context, request *protocol.RequestPermissionRequest) (bool, error)
	Ping(ctx context.Context, request *protocol.PingRequest) (string, error)
}

// UnsupportedProvider implements every Provider method by reporting
// operation-not-supported. Embed it in partial providers (a status-
// only agent, test fakes) so they implement the full interface and
// unimplemented operations fail the same way allowlist rejections do:
// before any side effect.
type UnsupportedProvider struct{}

func unsupported(op protocol.Operation) *protocol.ErrorEnvelope {
	return protocol.Errorf(protocol.CodeOperationNotSupported,
		"operation %q is not implemented on this host", op)
}

func (UnsupportedProvider) CaptureScreen(context.Context, *protocol.CaptureScreenRequest) (*protocol.CaptureData, error) {
	return nil, unsupported(protocol.OpCaptureScreen)
}

func (UnsupportedProvider) CaptureWindow(context.Context, *protocol.CaptureWindowRequest) (*protocol.CaptureData, error) {
	return nil, unsupported(protocol.OpCaptureWindow)
}

func (UnsupportedProvider) CaptureFrontmost(context.Context, *protocol.CaptureFrontmostRequest) (*protocol.CaptureData, error) {
	return nil, unsupported(protocol.OpCaptureFrontmost)
}

func (UnsupportedProvider) CaptureArea(context.Context, *protocol.CaptureAreaRequest) (*protocol.CaptureData, error) {
	return nil, unsupported(protocol.OpCaptureArea)
}

func (UnsupportedProvider) CaptureMenuBar(context.Context, *protocol.CaptureMenuBarRequest) (*protocol.CaptureData, error) {
	return nil, unsupported(protocol.OpCaptureMenuBar)
}

func (UnsupportedProvider) DetectElements(context.Context, *protocol.DetectElementsRequest) (*protocol.DetectionResult, error) {
	return nil, unsupported(protocol.OpDetectElements)
}

func (UnsupportedProvider) StoreDetectionResult(context.Context, *protocol.StoreDetectionResultRequest) error {
	return unsupported(protocol.OpStoreDetectionResult)
}

func (UnsupportedProvider) FetchDetectionResult(context.Context, *protocol.FetchDetectionResultRequest) (*protocol.DetectionResult, error) {
	return nil, unsupported(protocol.OpFetchDetectionResult)
}

func (UnsupportedProvider) ListSessions(context.Context, *protocol.ListSessionsRequest) ([]protocol.SessionInfo, error) {
	return nil, unsupported(protocol.OpListSessions)
}

func (UnsupportedProvider) CleanSessions(context.Context, *protocol.CleanSessionsRequest) ([]protocol.SessionInfo, error) {
	return nil, unsupported(protocol.OpCleanSessions)
}

func (UnsupportedProvider) Click(context.Context, *protocol.ClickRequest) error {
	return unsupported(protocol.OpClick)
}

func (UnsupportedProvider) TypeText(context.Context, *protocol.TypeTextRequest) error {
	return unsupported(protocol.OpTypeText)
}

func (UnsupportedProvider) PressKey(context.Context, *protocol.PressKeyRequest) error {
	return unsupported(protocol.OpPressKey)
}

func (UnsupportedProvider) Hotkey(context.Context, *protocol.HotkeyRequest) error {
	return unsupported(protocol.OpHotkey)
}

func (UnsupportedProvider) Scroll(context.Context, *protocol.ScrollRequest) error {
	return unsupported(protocol.OpScroll)
}

func (UnsupportedProvider) Swipe(context.Context, *protocol.SwipeRequest) error {
	return unsupported(protocol.OpSwipe)
}

func (UnsupportedProvider) Drag(context.Context, *protocol.DragRequest) error {
	return unsupported(protocol.OpDrag)
}

func (UnsupportedProvider) MoveMouse(context.Context, *protocol.MoveMouseRequest) error {
	return unsupported(protocol.OpMoveMouse)
}

func (UnsupportedProvider) ListWindows(context.Context, *protocol.ListWindowsRequest) (*protocol.WindowListData, error) {
	return nil, unsupported(protocol.OpListWindows)
}

func (UnsupportedProvider) FocusWindow(context.Context, *protocol.FocusWindowRequest) error {
	return unsupported(protocol.OpFocusWindow)
}

func (UnsupportedProvider) MoveWindow(context.Context, *protocol.MoveWindowRequest) error {
	return unsupported(protocol.OpMoveWindow)
}

func (UnsupportedProvider) ResizeWindow(context.Context, *protocol.ResizeWindowRequest) error {
	return unsupported(protocol.OpResizeWindow)
}

func (UnsupportedProvider) SetWindowBounds(context.Context, *protocol.SetWindowBoundsRequest) error {
	return unsupported(protocol.OpSetWindowBounds)
}

func (UnsupportedProvider) MinimizeWindow(context.Context, *protocol.MinimizeWindowRequest) error {
	return unsupported(protocol.OpMinimizeWindow)
}

func (UnsupportedProvider) MaximizeWindow(context.Context, *protocol.MaximizeWindowRequest) error {
	return unsupported(protocol.OpMaximizeWindow)
}

func (UnsupportedProvider) CloseWindow(context.Context, *protocol.CloseWindowRequest) error {
	return unsupported(protocol.OpCloseWindow)
}

func (UnsupportedProvider) ListScreens(context.Context, *protocol.ListScreensRequest) ([]protocol.ScreenInfo, error) {
	return nil, unsupported(protocol.OpListScreens)
}

func (UnsupportedProvider) ListApps(context.Context, *protocol.ListAppsRequest) ([]protocol.ApplicationInfo, error) {
	return nil, unsupported(protocol.OpListApps)
}

func (UnsupportedProvider) LaunchApp(context.Context, *protocol.LaunchAppRequest) error {
	return unsupported(protocol.OpLaunchApp)
}

func (UnsupportedProvider) QuitApp(context.Context, *protocol.QuitAppRequest) (bool, error) {
	return false, unsupported(protocol.OpQuitApp)
}

func (UnsupportedProvider) RelaunchApp(context.Context, *protocol.RelaunchAppRequest) error {
	return unsupported(protocol.OpRelaunchApp)
}

func (UnsupportedProvider) IsAppRunning(context.Context, *protocol.IsAppRunningRequest) (bool, error) {
	return false, unsupported(protocol.OpIsAppRunning)
}

func (UnsupportedProvider) FocusApp(context.Context, *protocol.FocusAppRequest) error {
	return unsupported(protocol.OpFocusApp)
}

func (UnsupportedProvider) HideApp(context.Context, *protocol.HideAppRequest) error {
	return unsupported(protocol.OpHideApp)
}

func (UnsupportedProvider) UnhideApp(context.Context, *protocol.UnhideAppRequest) error {
	return unsupported(protocol.OpUnhideApp)
}

func (UnsupportedProvider) ListMenus(context.Context, *protocol.ListMenusRequest) ([]protocol.MenuInfo, error) {
	return nil, unsupported(protocol.OpListMenus)
}

func (UnsupportedProvider) ClickMenuItem(context.Context, *protocol.ClickMenuItemRequest) error {
	return unsupported(protocol.OpClickMenuItem)
}

func (UnsupportedProvider) ListMenuExtras(context.Context, *protocol.ListMenuExtrasRequest) ([]protocol.MenuInfo, error) {
	return nil, unsupported(protocol.OpListMenuExtras)
}

func (UnsupportedProvider) ClickMenuExtra(context.Context, *protocol.ClickMenuExtraRequest) error {
	return unsupported(protocol.OpClickMenuExtra)
}

func (UnsupportedProvider) ListDock(context.Context, *protocol.ListDockRequest) ([]protocol.DockItem, error) {
	return nil, unsupported(protocol.OpListDock)
}

func (UnsupportedProvider) ClickDockItem(context.Context, *protocol.ClickDockItemRequest) error {
	return unsupported(protocol.OpClickDockItem)
}

func (UnsupportedProvider) HideDock(context.Context, *protocol.HideDockRequest) error {
	return unsupported(protocol.OpHideDock)
}

func (UnsupportedProvider) ShowDock(context.Context, *protocol.ShowDockRequest) error {
	return unsupported(protocol.OpShowDock)
}

func (UnsupportedProvider) ListDialogs(context.Context, *protocol.ListDialogsRequest) ([]protocol.DialogInfo, error) {
	return nil, unsupported(protocol.OpListDialogs)
}

func (UnsupportedProvider) DialogClick(context.Context, *protocol.DialogClickRequest) error {
	return unsupported(protocol.OpDialogClick)
}

func (UnsupportedProvider) DialogInput(context.Context, *protocol.DialogInputRequest) error {
	return unsupported(protocol.OpDialogInput)
}

func (UnsupportedProvider) DialogFile(context.Context, *protocol.DialogFileRequest) error {
	return unsupported(protocol.OpDialogFile)
}

func (UnsupportedProvider) DialogDismiss(context.Context, *protocol.DialogDismissRequest) error {
	return unsupported(protocol.OpDialogDismiss)
}

func (UnsupportedProvider) ListSpaces(context.Context, *protocol.ListSpacesRequest) ([]protocol.SpaceInfo, error) {
	return nil, unsupported(protocol.OpListSpaces)
}

func (UnsupportedProvider) SwitchSpace(context.Context, *protocol.SwitchSpaceRequest) error {
	return unsupported(protocol.OpSwitchSpace)
}

func (UnsupportedProvider) MoveWindowToSpace(context.Context, *protocol.MoveWindowToSpaceRequest) error {
	return unsupported(protocol.OpMoveWindowToSpace)
}

func (UnsupportedProvider) ReadClipboard(context.Context, *protocol.ReadClipboardRequest) (string, error) {
	return "", unsupported(protocol.OpReadClipboard)
}

func (UnsupportedProvider) WriteClipboard(context.Context, *protocol.WriteClipboardRequest) error {
	return unsupported(protocol.OpWriteClipboard)
}

func (UnsupportedProvider) ClearClipboard(context.Context, *protocol.ClearClipboardRequest) error {
	return unsupported(protocol.OpClearClipboard)
}

func (UnsupportedProvider) RunScript(context.Context, *protocol.RunScriptRequest) (string, error) {
	return "", unsupported(protocol.OpRunScript)
}

func (UnsupportedProvider) OpenURL(context.Context, *protocol.OpenURLRequest) error {
	return unsupported(protocol.OpOpenURL)
}

func (UnsupportedProvider) ServerStatus(context.Context, *protocol.ServerStatusRequest) (*protocol.ServerStatus, error) {
	return nil, unsupported(protocol.OpServerStatus)
}

func (UnsupportedProvider) CheckPermissions(context.Context, *protocol.CheckPermissionsRequest) (*protocol.ServerStatus, error) {
	return nil, unsupported(protocol.OpCheckPermissions)
}

func (UnsupportedProvider) RequestPermission(context.Context, *protocol.RequestPermissionRequest) (bool, error) {
	return false, unsupported(protocol.OpRequestPermission)
}

func (UnsupportedProvider) Ping(context.Context, *protocol.PingRequest) (string, error) {
	return "", unsupported(protocol.OpPing)
}
