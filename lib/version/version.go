// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package version identifies the running binary: the release string
// stamped at link time plus a content digest of the executable
// itself. The combination feeds the handshake build field so a client
// can detect skew between itself and the agent it is talking to.
package version

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/zeebo/blake3"
)

// Version is stamped by the build:
//
//	go build -ldflags "-X github.com/peekaboo-foundation/peekaboo/lib/version.Version=v1.2.0"
//
// Unstamped builds report "dev".
var Version = "dev"

// Commit is the source revision, stamped the same way.
var Commit = ""

var (
	buildOnce sync.Once
	buildID   string
)

// Build returns the full build identifier: version, commit, and a
// short BLAKE3 digest of the executable. Computed once; the digest
// covers the binary actually running, so two "dev" builds still get
// distinct identifiers.
func Build() string {
	buildOnce.Do(func() {
		buildID = Version
		if Commit != "" {
			buildID += "+" + shortRef(Commit)
		}
		if digest, err := executableDigest(); err == nil {
			buildID += "@" + digest
		}
	})
	return buildID
}

func shortRef(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

// executableDigest hashes the running binary and returns the first 8
// hex-encoded digest bytes.
func executableDigest() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)[:8]), nil
}
