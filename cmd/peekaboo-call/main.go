// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// peekaboo-call is a debugging client for a running agent: send one
// operation by name, with parameters given as JSON, and print the
// reply in CBOR diagnostic notation.
//
//	peekaboo-call ping
//	peekaboo-call --params '{"message": "hello"}' ping
//	peekaboo-call --socket /tmp/agent.sock list-sessions
//	peekaboo-call --list
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/peekaboo-foundation/peekaboo/lib/codec"
	"github.com/peekaboo-foundation/peekaboo/lib/config"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
	"github.com/peekaboo-foundation/peekaboo/lib/service"
	"github.com/peekaboo-foundation/peekaboo/lib/version"
)

func main() {
	if err := run(); err != nil {
		var envelope *protocol.ErrorEnvelope
		if errors.As(err, &envelope) {
			fmt.Fprintf(os.Stderr, "agent error [%s]: %s\n", envelope.Code, envelope.Message)
			if envelope.Details != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", envelope.Details)
			}
		} else {
			fmt.Fprintf(os.Stderr, "peekaboo-call: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		socketPath  string
		params      string
		timeout     time.Duration
		list        bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("peekaboo-call", pflag.ContinueOnError)
	flagSet.StringVar(&socketPath, "socket", config.DefaultSocketPath(), "agent socket path")
	flagSet.StringVarP(&params, "params", "p", "", "operation parameters as JSON")
	flagSet.DurationVar(&timeout, "timeout", 30*time.Second, "overall call timeout")
	flagSet.BoolVar(&list, "list", false, "list known operations and exit")
	flagSet.BoolVar(&showVersion, "version", false, "print the build identifier and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Println("peekaboo-call", version.Build())
		return nil
	}
	if list {
		printOperations()
		return nil
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: peekaboo-call [flags] <operation>")
	}
	operation := protocol.Operation(flagSet.Arg(0))
	if !protocol.KnownOperation(operation) {
		return fmt.Errorf("unknown operation %q (try --list)", operation)
	}

	request, err := buildRequest(operation, params)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := service.Dial(ctx, socketPath, service.ClientConfig{
		Logger: service.NewLogger(slog.LevelWarn),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	hostname, _ := os.Hostname()
	session, err := client.Handshake(ctx, protocol.ClientIdentity{
		BundleID: "dev.peekaboo.call",
		PID:      int32(os.Getpid()),
		Hostname: hostname,
	}, "")
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	fmt.Fprintf(os.Stderr, "connected: protocol %s, %s host, build %s\n",
		session.NegotiatedVersion, session.HostKind, session.Build)

	response, err := client.Send(ctx, request)
	if err != nil {
		return err
	}
	return printResponse(response)
}

// buildRequest turns an operation name plus JSON parameters into a
// typed request by routing them through the wire envelope decoder.
func buildRequest(operation protocol.Operation, params string) (protocol.Request, error) {
	envelope := map[string]any{"case": string(operation)}
	if params != "" {
		var fields map[string]any
		if err := json.Unmarshal([]byte(params), &fields); err != nil {
			return nil, fmt.Errorf("parsing --params: %w", err)
		}
		payload, err := codec.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encoding parameters: %w", err)
		}
		envelope["payload"] = codec.RawMessage(payload)
	}
	raw, err := codec.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	request, _, err := protocol.DecodeRequestEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("parameters do not fit %s: %w", operation, err)
	}
	return request, nil
}

// printResponse renders the reply in CBOR diagnostic notation, which
// is compact and shows byte-string payload sizes without dumping
// them.
func printResponse(response protocol.Response) error {
	data, err := codec.Marshal(response)
	if err != nil {
		return fmt.Errorf("re-encoding response: %w", err)
	}
	diagnostic, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("rendering response: %w", err)
	}
	fmt.Println(diagnostic)
	return nil
}

func printOperations() {
	for _, op := range protocol.AllOperations() {
		line := string(op)
		if kinds := protocol.RequiredPermissions(op); len(kinds) > 0 {
			var names []string
			for _, kind := range kinds {
				names = append(names, string(kind))
			}
			line += " (requires " + strings.Join(names, ", ") + ")"
		}
		fmt.Println(line)
	}
}
