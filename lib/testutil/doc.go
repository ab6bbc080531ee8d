// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides small helpers shared by concurrency tests:
// channel sends and receives with a timeout safety valve, so a broken
// invariant fails the test instead of hanging the suite.
package testutil
