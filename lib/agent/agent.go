// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent is the provider hosted by the peekaboo-agent binary.
// It implements the status, permission, and detection-session
// operations for real; the OS-automation operations answer
// operation-not-supported until a platform capture/input backend is
// compiled in, with one refinement: operations whose permissions are
// visibly missing fail permission-denied instead, so a client sees
// the actionable error first.
package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/compress"
	"github.com/peekaboo-foundation/peekaboo/lib/permissions"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/service"
	"github.com/peekaboo-foundation/peekaboo/lib/sessionstore"
)

// Options configures an Agent.
type Options struct {
	// Sessions persists detection results. Required.
	Sessions *sessionstore.Store

	// Prober answers permission probes. Nil means a live prober over
	// the process environment.
	Prober *permissions.Prober

	// HostKind is reported in server-status replies. Empty means
	// helper.
	HostKind protocol.HostKind

	// Build identifies the running binary.
	Build string

	// Compress packs capture payloads with zstd before they go on
	// the wire. A request's own Compress flag enables packing for
	// that capture regardless of this setting.
	Compress bool

	// Logger receives operation-level events. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Agent implements service.Provider.
type Agent struct {
	service.UnsupportedProvider

	sessions *sessionstore.Store
	prober   *permissions.Prober
	hostKind protocol.HostKind
	build    string
	compress bool
	logger   *slog.Logger
	started  time.Time
}

// New builds an Agent.
func New(options Options) *Agent {
	prober := options.Prober
	if prober == nil {
		prober = &permissions.Prober{}
	}
	hostKind := options.HostKind
	if hostKind == "" {
		hostKind = protocol.HostKindHelper
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		sessions: options.Sessions,
		prober:   prober,
		hostKind: hostKind,
		build:    options.Build,
		compress: options.Compress,
		logger:   logger,
		started:  time.Now(),
	}
}

// Status operations.

func (a *Agent) ServerStatus(_ context.Context, _ *protocol.ServerStatusRequest) (*protocol.ServerStatus, error) {
	return &protocol.ServerStatus{
		Version:       protocol.CurrentVersion,
		Build:         a.build,
		HostKind:      a.hostKind,
		Permissions:   a.prober.Status(),
		UptimeSeconds: int64(time.Since(a.started).Seconds()),
	}, nil
}

func (a *Agent) CheckPermissions(ctx context.Context, _ *protocol.CheckPermissionsRequest) (*protocol.ServerStatus, error) {
	return a.ServerStatus(ctx, nil)
}

// RequestPermission reports the current grant. There is no prompt to
// show on this platform; the environment info in the logs tells the
// operator what to change.
func (a *Agent) RequestPermission(_ context.Context, request *protocol.RequestPermissionRequest) (bool, error) {
	granted := a.prober.Granted(request.Kind)
	if !granted {
		a.logger.Info("permission not granted",
			"kind", string(request.Kind),
			"environment", a.prober.EnvironmentInfo())
	}
	return granted, nil
}

func (a *Agent) Ping(_ context.Context, request *protocol.PingRequest) (string, error) {
	return request.Message, nil
}

// Detection-session operations.

func (a *Agent) StoreDetectionResult(ctx context.Context, request *protocol.StoreDetectionResultRequest) error {
	return a.sessions.Put(ctx, &request.Result)
}

func (a *Agent) FetchDetectionResult(ctx context.Context, request *protocol.FetchDetectionResultRequest) (*protocol.DetectionResult, error) {
	return a.sessions.Get(ctx, request.SessionID)
}

func (a *Agent) ListSessions(ctx context.Context, _ *protocol.ListSessionsRequest) ([]protocol.SessionInfo, error) {
	return a.sessions.List(ctx)
}

func (a *Agent) CleanSessions(ctx context.Context, request *protocol.CleanSessionsRequest) ([]protocol.SessionInfo, error) {
	olderThan := time.Duration(request.OlderThanSeconds) * time.Second
	return a.sessions.Clean(ctx, olderThan, request.DryRun)
}

// Capture and detection pre-flights. No backend is compiled in, but a
// missing permission is the more actionable failure, so probe first.

// packed applies wire compression to a successful capture when the
// agent or the request asks for it.
func (a *Agent) packed(capture *protocol.CaptureData, requested bool, err error) (*protocol.CaptureData, error) {
	if err != nil {
		return nil, err
	}
	if a.compress || requested {
		compress.PackCapture(capture)
	}
	return capture, nil
}

func (a *Agent) CaptureScreen(ctx context.Context, request *protocol.CaptureScreenRequest) (*protocol.CaptureData, error) {
	if err := a.prober.Require(protocol.OpCaptureScreen); err != nil {
		return nil, err
	}
	capture, err := a.UnsupportedProvider.CaptureScreen(ctx, request)
	return a.packed(capture, request.Compress, err)
}

func (a *Agent) CaptureWindow(ctx context.Context, request *protocol.CaptureWindowRequest) (*protocol.CaptureData, error) {
	if err := a.prober.Require(protocol.OpCaptureWindow); err != nil {
		return nil, err
	}
	capture, err := a.UnsupportedProvider.CaptureWindow(ctx, request)
	return a.packed(capture, request.Compress, err)
}

func (a *Agent) CaptureFrontmost(ctx context.Context, request *protocol.CaptureFrontmostRequest) (*protocol.CaptureData, error) {
	if err := a.prober.Require(protocol.OpCaptureFrontmost); err != nil {
		return nil, err
	}
	capture, err := a.UnsupportedProvider.CaptureFrontmost(ctx, request)
	return a.packed(capture, request.Compress, err)
}

func (a *Agent) CaptureArea(ctx context.Context, request *protocol.CaptureAreaRequest) (*protocol.CaptureData, error) {
	if err := a.prober.Require(protocol.OpCaptureArea); err != nil {
		return nil, err
	}
	capture, err := a.UnsupportedProvider.CaptureArea(ctx, request)
	return a.packed(capture, request.Compress, err)
}

func (a *Agent) CaptureMenuBar(ctx context.Context, request *protocol.CaptureMenuBarRequest) (*protocol.CaptureData, error) {
	if err := a.prober.Require(protocol.OpCaptureMenuBar); err != nil {
		return nil, err
	}
	capture, err := a.UnsupportedProvider.CaptureMenuBar(ctx, request)
	return a.packed(capture, request.Compress, err)
}

func (a *Agent) DetectElements(ctx context.Context, request *protocol.DetectElementsRequest) (*protocol.DetectionResult, error) {
	// Detection against caller-supplied image data needs no screen
	// access; a live detection does.
	if len(request.ImageData) == 0 {
		if err := a.prober.Require(protocol.OpDetectElements); err != nil {
			return nil, err
		}
	}
	return a.UnsupportedProvider.DetectElements(ctx, request)
}
