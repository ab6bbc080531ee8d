// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package permissions probes what the host environment actually lets
// the agent do: talk to a display server for capture, inspect and
// drive windows, and spawn scripts. The probes answer the status
// operations and let providers fail fast with permission-denied
// before attempting an operation that cannot work.
//
// On Linux there is no grant dialog to pop; a "permission" here is an
// observable property of the session, such as a reachable display
// server socket or the absence of an app sandbox.
package permissions

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Prober inspects the session environment. The zero value probes the
// real process environment; tests substitute Getenv and Stat.
type Prober struct {
	// Getenv looks up an environment variable. Nil means os.Getenv.
	Getenv func(key string) string

	// Stat checks a filesystem path. Nil means os.Stat.
	Stat func(path string) (fs.FileInfo, error)

	// Logger receives probe results at debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (p *Prober) getenv(key string) string {
	if p.Getenv != nil {
		return p.Getenv(key)
	}
	return os.Getenv(key)
}

func (p *Prober) stat(path string) (fs.FileInfo, error) {
	if p.Stat != nil {
		return p.Stat(path)
	}
	return os.Stat(path)
}

func (p *Prober) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ScreenRecording reports whether a display server is reachable. X11
// sessions check the display socket; Wayland sessions check the
// compositor socket; headless sessions have nothing to capture.
func (p *Prober) ScreenRecording() bool {
	if display := p.getenv("DISPLAY"); display != "" {
		return p.x11Access(display)
	}
	if display := p.getenv("WAYLAND_DISPLAY"); display != "" {
		return p.waylandAccess(display)
	}
	p.logger().Debug("no display server detected, headless session")
	return false
}

// Accessibility reports whether window inspection and input synthesis
// are plausible: an unsandboxed session with a readable /proc.
func (p *Prober) Accessibility() bool {
	if p.Sandboxed() {
		p.logger().Debug("app sandbox detected, window management restricted")
		return false
	}
	if _, err := p.stat("/proc/self"); err != nil {
		p.logger().Debug("cannot access /proc", "error", err)
		return false
	}
	return true
}

// Scripting reports whether spawning user scripts is permitted. App
// sandboxes deny it; everything else allows it.
func (p *Prober) Scripting() bool {
	return !p.Sandboxed()
}

// Sandboxed detects app-container environments (Flatpak, Snap,
// AppImage, Docker) where desktop automation is typically walled off.
func (p *Prober) Sandboxed() bool {
	for _, key := range []string{"FLATPAK_ID", "SNAP", "APPIMAGE"} {
		if p.getenv(key) != "" {
			return true
		}
	}
	if _, err := p.stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

// x11Access checks whether the X display socket exists. Remote
// displays (host:0) cannot be checked locally and are assumed
// reachable; the capture itself will fail if they are not.
func (p *Prober) x11Access(display string) bool {
	host, number, ok := strings.Cut(display, ":")
	if !ok {
		return false
	}
	if host != "" {
		return true
	}
	if screen := strings.IndexByte(number, '.'); screen >= 0 {
		number = number[:screen]
	}
	_, err := p.stat("/tmp/.X11-unix/X" + number)
	return err == nil
}

// waylandAccess checks whether the compositor socket exists.
// WAYLAND_DISPLAY may be an absolute path or a name relative to the
// runtime directory.
func (p *Prober) waylandAccess(display string) bool {
	socketPath := display
	if !filepath.IsAbs(socketPath) {
		runtimeDir := p.getenv("XDG_RUNTIME_DIR")
		if runtimeDir == "" {
			runtimeDir = fmt.Sprintf("/run/user/%d", os.Getuid())
		}
		socketPath = filepath.Join(runtimeDir, display)
	}
	_, err := p.stat(socketPath)
	return err == nil
}

// Granted reports one permission kind.
func (p *Prober) Granted(kind protocol.PermissionKind) bool {
	switch kind {
	case protocol.PermissionScreenRecording:
		return p.ScreenRecording()
	case protocol.PermissionAccessibility:
		return p.Accessibility()
	case protocol.PermissionScripting:
		return p.Scripting()
	default:
		return false
	}
}

// Status probes all permission kinds at once, for the status
// operations.
func (p *Prober) Status() protocol.PermissionStatus {
	return protocol.PermissionStatus{
		ScreenRecording: p.ScreenRecording(),
		Accessibility:   p.Accessibility(),
		Scripting:       p.Scripting(),
	}
}

// Require returns a permission-denied envelope when the operation's
// required permissions are not all granted, and nil otherwise. Call
// it at the top of a provider method to fail before side effects.
func (p *Prober) Require(op protocol.Operation) error {
	for _, kind := range protocol.RequiredPermissions(op) {
		if !p.Granted(kind) {
			return protocol.Errorf(protocol.CodePermissionDenied,
				"%s requires the %s permission", op, kind).
				WithDetails(p.EnvironmentInfo())
		}
	}
	return nil
}

// EnvironmentInfo summarizes the detected session for diagnostics.
func (p *Prober) EnvironmentInfo() string {
	var parts []string
	if display := p.getenv("DISPLAY"); display != "" {
		parts = append(parts, "x11="+display)
	}
	if display := p.getenv("WAYLAND_DISPLAY"); display != "" {
		parts = append(parts, "wayland="+display)
	}
	if desktop := p.getenv("XDG_CURRENT_DESKTOP"); desktop != "" {
		parts = append(parts, "desktop="+desktop)
	}
	if session := p.getenv("XDG_SESSION_TYPE"); session != "" {
		parts = append(parts, "session="+session)
	}
	if p.Sandboxed() {
		parts = append(parts, "sandboxed=true")
	}
	if len(parts) == 0 {
		return "no display environment detected"
	}
	return strings.Join(parts, " ")
}
