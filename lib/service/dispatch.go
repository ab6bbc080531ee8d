// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// dispatch invokes the provider method matching the concrete request
// type. One case per operation; a request variant without a case here
// is a bug caught by TestDispatchCoversEveryOperation.
//
// A panic in a provider method is confined to the request that caused
// it and reported as internal-error, so one bad handler cannot take
// down the connection.
func (s *Server) dispatch(ctx context.Context, request protocol.Request) (response protocol.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = protocol.Errorf(protocol.CodeInternalError,
				"provider panicked handling %s", request.Operation()).
				WithDetails(fmt.Sprint(r))
		}
	}()

	switch request := request.(type) {
	case *protocol.CaptureScreenRequest:
		return captureResult(s.provider.CaptureScreen(ctx, request))
	case *protocol.CaptureWindowRequest:
		return captureResult(s.provider.CaptureWindow(ctx, request))
	case *protocol.CaptureFrontmostRequest:
		return captureResult(s.provider.CaptureFrontmost(ctx, request))
	case *protocol.CaptureAreaRequest:
		return captureResult(s.provider.CaptureArea(ctx, request))
	case *protocol.CaptureMenuBarRequest:
		return captureResult(s.provider.CaptureMenuBar(ctx, request))

	case *protocol.DetectElementsRequest:
		return detectionResult(s.provider.DetectElements(ctx, request))
	case *protocol.StoreDetectionResultRequest:
		return okResult(s.provider.StoreDetectionResult(ctx, request))
	case *protocol.FetchDetectionResultRequest:
		return detectionResult(s.provider.FetchDetectionResult(ctx, request))
	case *protocol.ListSessionsRequest:
		return sessionsResult(s.provider.ListSessions(ctx, request))
	case *protocol.CleanSessionsRequest:
		return sessionsResult(s.provider.CleanSessions(ctx, request))

	case *protocol.ClickRequest:
		return okResult(s.provider.Click(ctx, request))
	case *protocol.TypeTextRequest:
		return okResult(s.provider.TypeText(ctx, request))
	case *protocol.PressKeyRequest:
		return okResult(s.provider.PressKey(ctx, request))
	case *protocol.HotkeyRequest:
		return okResult(s.provider.Hotkey(ctx, request))
	case *protocol.ScrollRequest:
		return okResult(s.provider.Scroll(ctx, request))
	case *protocol.SwipeRequest:
		return okResult(s.provider.Swipe(ctx, request))
	case *protocol.DragRequest:
		return okResult(s.provider.Drag(ctx, request))
	case *protocol.MoveMouseRequest:
		return okResult(s.provider.MoveMouse(ctx, request))

	case *protocol.ListWindowsRequest:
		data, err := s.provider.ListWindows(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.WindowsResponse{Data: *data}, nil
	case *protocol.FocusWindowRequest:
		return okResult(s.provider.FocusWindow(ctx, request))
	case *protocol.MoveWindowRequest:
		return okResult(s.provider.MoveWindow(ctx, request))
	case *protocol.ResizeWindowRequest:
		return okResult(s.provider.ResizeWindow(ctx, request))
	case *protocol.SetWindowBoundsRequest:
		return okResult(s.provider.SetWindowBounds(ctx, request))
	case *protocol.MinimizeWindowRequest:
		return okResult(s.provider.MinimizeWindow(ctx, request))
	case *protocol.MaximizeWindowRequest:
		return okResult(s.provider.MaximizeWindow(ctx, request))
	case *protocol.CloseWindowRequest:
		return okResult(s.provider.CloseWindow(ctx, request))

	case *protocol.ListScreensRequest:
		screens, err := s.provider.ListScreens(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.ScreensResponse{Screens: screens}, nil

	case *protocol.ListAppsRequest:
		applications, err := s.provider.ListApps(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.AppsResponse{Applications: applications}, nil
	case *protocol.LaunchAppRequest:
		return okResult(s.provider.LaunchApp(ctx, request))
	case *protocol.QuitAppRequest:
		return boolResult(s.provider.QuitApp(ctx, request))
	case *protocol.RelaunchAppRequest:
		return okResult(s.provider.RelaunchApp(ctx, request))
	case *protocol.IsAppRunningRequest:
		return boolResult(s.provider.IsAppRunning(ctx, request))
	case *protocol.FocusAppRequest:
		return okResult(s.provider.FocusApp(ctx, request))
	case *protocol.HideAppRequest:
		return okResult(s.provider.HideApp(ctx, request))
	case *protocol.UnhideAppRequest:
		return okResult(s.provider.UnhideApp(ctx, request))

	case *protocol.ListMenusRequest:
		return menusResult(s.provider.ListMenus(ctx, request))
	case *protocol.ClickMenuItemRequest:
		return okResult(s.provider.ClickMenuItem(ctx, request))
	case *protocol.ListMenuExtrasRequest:
		return menusResult(s.provider.ListMenuExtras(ctx, request))
	case *protocol.ClickMenuExtraRequest:
		return okResult(s.provider.ClickMenuExtra(ctx, request))

	case *protocol.ListDockRequest:
		items, err := s.provider.ListDock(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.DockResponse{Items: items}, nil
	case *protocol.ClickDockItemRequest:
		return okResult(s.provider.ClickDockItem(ctx, request))
	case *protocol.HideDockRequest:
		return okResult(s.provider.HideDock(ctx, request))
	case *protocol.ShowDockRequest:
		return okResult(s.provider.ShowDock(ctx, request))

	case *protocol.ListDialogsRequest:
		dialogs, err := s.provider.ListDialogs(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.DialogsResponse{Dialogs: dialogs}, nil
	case *protocol.DialogClickRequest:
		return okResult(s.provider.DialogClick(ctx, request))
	case *protocol.DialogInputRequest:
		return okResult(s.provider.DialogInput(ctx, request))
	case *protocol.DialogFileRequest:
		return okResult(s.provider.DialogFile(ctx, request))
	case *protocol.DialogDismissRequest:
		return okResult(s.provider.DialogDismiss(ctx, request))

	case *protocol.ListSpacesRequest:
		spaces, err := s.provider.ListSpaces(ctx, request)
		if err != nil {
			return nil, err
		}
		return &protocol.SpacesResponse{Spaces: spaces}, nil
	case *protocol.SwitchSpaceRequest:
		return okResult(s.provider.SwitchSpace(ctx, request))
	case *protocol.MoveWindowToSpaceRequest:
		return okResult(s.provider.MoveWindowToSpace(ctx, request))

	case *protocol.ReadClipboardRequest:
		return textResult(s.provider.ReadClipboard(ctx, request))
	case *protocol.WriteClipboardRequest:
		return okResult(s.provider.WriteClipboard(ctx, request))
	case *protocol.ClearClipboardRequest:
		return okResult(s.provider.ClearClipboard(ctx, request))

	case *protocol.RunScriptRequest:
		return textResult(s.provider.RunScript(ctx, request))
	case *protocol.OpenURLRequest:
		return okResult(s.provider.OpenURL(ctx, request))

	case *protocol.ServerStatusRequest:
		return statusResult(s.provider.ServerStatus(ctx, request))
	case *protocol.CheckPermissionsRequest:
		return statusResult(s.provider.CheckPermissions(ctx, request))
	case *protocol.RequestPermissionRequest:
		return boolResult(s.provider.RequestPermission(ctx, request))
	case *protocol.PingRequest:
		return textResult(s.provider.Ping(ctx, request))
	}
	return nil, protocol.Errorf(protocol.CodeInternalError,
		"no handler for request type %T", request)
}

func okResult(err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.OKResponse{}, nil
}

func boolResult(value bool, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.BoolResponse{Value: value}, nil
}

func textResult(text string, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.TextResponse{Text: text}, nil
}

func captureResult(capture *protocol.CaptureData, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.CaptureResponse{Capture: *capture}, nil
}

func detectionResult(result *protocol.DetectionResult, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.DetectionResponse{Result: *result}, nil
}

func sessionsResult(sessions []protocol.SessionInfo, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.SessionsResponse{Sessions: sessions}, nil
}

func menusResult(menus []protocol.MenuInfo, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.MenusResponse{Menus: menus}, nil
}

func statusResult(status *protocol.ServerStatus, err error) (protocol.Response, error) {
	if err != nil {
		return nil, err
	}
	return &protocol.StatusResponse{Status: *status}, nil
}
