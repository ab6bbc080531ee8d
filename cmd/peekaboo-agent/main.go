// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// peekaboo-agent is the privileged automation helper. It listens on a
// per-user Unix socket, speaks the agent protocol, and routes
// operations through the permission-gated server to the hosted
// provider. Configuration is an optional JSONC file; flags override
// the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/peekaboo-foundation/peekaboo/lib/agent"
	"github.com/peekaboo-foundation/peekaboo/lib/config"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/service"
	"github.com/peekaboo-foundation/peekaboo/lib/sessionstore"
	"github.com/peekaboo-foundation/peekaboo/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "peekaboo-agent: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		socketPath  string
		logLevel    string
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("peekaboo-agent", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the JSONC config file")
	flagSet.StringVar(&socketPath, "socket", "", "listen on this socket path (overrides the config file)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn, or error (overrides the config file)")
	flagSet.BoolVar(&showVersion, "version", false, "print the build identifier and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Println("peekaboo-agent", version.Build())
		return nil
	}

	cfg, err := loadConfig(configPath, flagSet.Changed("config"))
	if err != nil {
		return err
	}
	if socketPath != "" {
		cfg.SocketPath = socketPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	cfg.ApplyDefaults()

	logger := service.NewLogger(cfg.Level())
	logger.Info("starting", "build", version.Build(), "socket", cfg.SocketPath)

	for _, path := range []string{cfg.SocketPath, cfg.SessionDBPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
	}

	sessions, err := sessionstore.Open(sessionstore.Config{
		Path:   cfg.SessionDBPath,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer sessions.Close()

	provider := agent.New(agent.Options{
		Sessions: sessions,
		HostKind: protocol.HostKind(cfg.HostKind),
		Build:    version.Build(),
		Compress: cfg.CompressCaptures,
		Logger:   logger,
	})
	server := service.NewServer(service.Config{
		Allowlist:       cfg.Allowlist(),
		AllowedBundles:  cfg.AllowedBundles,
		AllowedTeams:    cfg.AllowedTeams,
		HostKind:        protocol.HostKind(cfg.HostKind),
		Build:           version.Build(),
		MaxRequestBytes: cfg.MaxRequestBytes,
		Logger:          logger,
	}, provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return service.ListenAndServe(ctx, cfg.SocketPath, server, logger)
}

// loadConfig reads the config file. A missing file at the default
// path means "no config"; a missing file named explicitly is an
// error.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.ReadFile(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return &config.Config{}, nil
	}
	return nil, err
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "peekaboo.jsonc"
	}
	return filepath.Join(configDir, "peekaboo", "agent.jsonc")
}
