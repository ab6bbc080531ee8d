// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

func TestParseJSONCWithCommentsAndTrailingCommas(t *testing.T) {
	data := []byte(`{
		// where the agent listens
		"socket_path": "/run/user/1000/peekaboo/agent.sock",
		/* lock the agent down to one caller */
		"allowed_bundles": ["com.example.studio"],
		"log_level": "debug",
	}`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.SocketPath != "/run/user/1000/peekaboo/agent.sock" {
		t.Errorf("socket_path = %q", cfg.SocketPath)
	}
	if len(cfg.AllowedBundles) != 1 || cfg.AllowedBundles[0] != "com.example.studio" {
		t.Errorf("allowed_bundles = %v", cfg.AllowedBundles)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestZeroConfigIsValid(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("default level = %v", cfg.Level())
	}
	ops := cfg.Allowlist()
	if len(ops) != len(protocol.RemoteOperations()) {
		t.Errorf("default allowlist has %d operations", len(ops))
	}
	if slices.Contains(ops, protocol.OpRunScript) {
		t.Error("scripting enabled by default")
	}
}

func TestAllowScriptingExpandsAllowlist(t *testing.T) {
	cfg, err := Parse([]byte(`{"allow_scripting": true}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ops := cfg.Allowlist()
	if !slices.Contains(ops, protocol.OpRunScript) || !slices.Contains(ops, protocol.OpOpenURL) {
		t.Error("scripting operations missing with allow_scripting")
	}
}

func TestDisabledOperationsShrinkAllowlist(t *testing.T) {
	cfg, err := Parse([]byte(`{"disabled_operations": ["capture-screen", "type-text"]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ops := cfg.Allowlist()
	if slices.Contains(ops, protocol.OpCaptureScreen) || slices.Contains(ops, protocol.OpTypeText) {
		t.Error("disabled operations still enabled")
	}
	if !slices.Contains(ops, protocol.OpPing) {
		t.Error("unrelated operation disappeared")
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad host kind", `{"host_kind": "cloud"}`, "host_kind"},
		{"bad operation", `{"disabled_operations": ["frobnicate"]}`, "disabled_operations"},
		{"bad log level", `{"log_level": "loud"}`, "log_level"},
		{"negative size", `{"max_request_bytes": -1}`, "max_request_bytes"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.data))
			if err == nil {
				t.Fatal("invalid config accepted")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %s", err, test.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.jsonc")
	if err := os.WriteFile(path, []byte(`{"log_level": "warn"} // agent config`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("level = %v", cfg.Level())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.SocketPath == "" || cfg.SessionDBPath == "" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if !strings.Contains(cfg.SocketPath, "peekaboo") {
		t.Errorf("socket path %q", cfg.SocketPath)
	}
}
