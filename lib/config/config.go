// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package config parses the agent configuration file. Configs are
// authored as JSONC (JSON extended with // line comments, /* block
// comments */, and trailing commas); every field is optional and the
// zero config yields a working agent with the default socket path and
// the remote operation set.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Config is the agent configuration file.
type Config struct {
	// SocketPath is where the agent listens. Empty means
	// DefaultSocketPath().
	SocketPath string `json:"socket_path,omitempty"`

	// AllowedBundles restricts which client bundle identifiers may
	// connect. Empty means no restriction.
	AllowedBundles []string `json:"allowed_bundles,omitempty"`

	// AllowedTeams restricts client team identifiers.
	AllowedTeams []string `json:"allowed_teams,omitempty"`

	// AllowScripting enables the script-execution operations, which
	// are off for socket-reachable agents unless opted in.
	AllowScripting bool `json:"allow_scripting,omitempty"`

	// DisabledOperations removes individual operations from the
	// allowlist, on top of the scripting default.
	DisabledOperations []string `json:"disabled_operations,omitempty"`

	// HostKind overrides the advertised host role. Empty means
	// "helper".
	HostKind string `json:"host_kind,omitempty"`

	// MaxRequestBytes bounds a single request envelope. Zero keeps
	// the server default.
	MaxRequestBytes int64 `json:"max_request_bytes,omitempty"`

	// SessionDBPath is the detection-session database. Empty means a
	// file under the user cache directory.
	SessionDBPath string `json:"session_db_path,omitempty"`

	// CompressCaptures enables zstd compression of capture payloads.
	CompressCaptures bool `json:"compress_captures,omitempty"`

	// LogLevel is debug, info, warn, or error. Empty means info.
	LogLevel string `json:"log_level,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the result.
func Parse(data []byte) (*Config, error) {
	stripped := jsonc.ToJSON(data)

	var cfg Config
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadFile reads and parses a JSONC config file.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values without filling defaults.
func (c *Config) Validate() error {
	if c.HostKind != "" && !protocol.HostKind(c.HostKind).Valid() {
		return fmt.Errorf("unknown host_kind %q", c.HostKind)
	}
	for _, name := range c.DisabledOperations {
		if !protocol.KnownOperation(protocol.Operation(name)) {
			return fmt.Errorf("unknown operation %q in disabled_operations", name)
		}
	}
	if c.LogLevel != "" {
		if _, err := parseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if c.MaxRequestBytes < 0 {
		return fmt.Errorf("max_request_bytes must not be negative")
	}
	return nil
}

// Allowlist computes the operation set this config enables: the
// remote set, plus scripting when opted in, minus the disabled list.
func (c *Config) Allowlist() []protocol.Operation {
	var ops []protocol.Operation
	if c.AllowScripting {
		ops = protocol.AllOperations()
	} else {
		ops = protocol.RemoteOperations()
	}
	if len(c.DisabledOperations) == 0 {
		return ops
	}
	disabled := make(map[protocol.Operation]bool, len(c.DisabledOperations))
	for _, name := range c.DisabledOperations {
		disabled[protocol.Operation(name)] = true
	}
	enabled := ops[:0]
	for _, op := range ops {
		if !disabled[op] {
			enabled = append(enabled, op)
		}
	}
	return enabled
}

// Level returns the configured slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	if c.LogLevel == "" {
		return slog.LevelInfo
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", name)
	}
}

// DefaultSocketPath is the per-user agent socket location: the XDG
// runtime directory when available, otherwise a uid-scoped path under
// /tmp.
func DefaultSocketPath() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "peekaboo", "agent.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("peekaboo-%d", os.Getuid()), "agent.sock")
}

// DefaultSessionDBPath is the detection-session database location
// under the user cache directory.
func DefaultSessionDBPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "peekaboo-sessions.db")
	}
	return filepath.Join(cacheDir, "peekaboo", "sessions.db")
}

// ApplyDefaults fills empty paths with their defaults.
func (c *Config) ApplyDefaults() {
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath()
	}
	if c.SessionDBPath == "" {
		c.SessionDBPath = DefaultSessionDBPath()
	}
}
