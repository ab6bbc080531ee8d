// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package throttle provides the client-side admission gate bounding
// concurrent in-flight agent calls.
//
// The gate is a counting semaphore with strict FIFO fairness: a
// released slot always passes to the longest-waiting caller, never to
// a newer one. All counter and queue mutations happen under a single
// mutex; callers only ever see the Acquire/Release API, never the
// raw state.
package throttle
