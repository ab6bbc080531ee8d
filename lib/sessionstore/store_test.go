// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package sessionstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "sessions.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func sampleResult(sessionID string, createdAt time.Time) *protocol.DetectionResult {
	return &protocol.DetectionResult{
		SessionID: sessionID,
		CreatedAt: createdAt,
		Elements: map[string]protocol.DetectedElement{
			"B1": {
				ID:           "B1",
				Role:         "button",
				Label:        "Save",
				Bounds:       protocol.Rect{X: 10, Y: 20, Width: 80, Height: 24},
				IsActionable: true,
			},
			"T1": {
				ID:     "T1",
				Role:   "textfield",
				Value:  "draft.txt",
				Bounds: protocol.Rect{X: 10, Y: 60, Width: 200, Height: 24},
			},
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	createdAt := time.Now().Add(-time.Minute).UTC().Truncate(time.Microsecond)
	original := sampleResult("sess-1", createdAt)
	if err := store.Put(ctx, original); err != nil {
		t.Fatalf("Put: %v", err)
	}

	fetched, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.SessionID != "sess-1" {
		t.Errorf("session id = %q", fetched.SessionID)
	}
	if !fetched.CreatedAt.Equal(createdAt) {
		t.Errorf("created at = %v, want %v", fetched.CreatedAt, createdAt)
	}
	if len(fetched.Elements) != 2 {
		t.Fatalf("element count = %d", len(fetched.Elements))
	}
	if button := fetched.Elements["B1"]; button.Label != "Save" || !button.IsActionable {
		t.Errorf("B1 = %+v", button)
	}
}

func TestGetMissingSessionIsNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "nope")
	envelope, ok := protocol.AsEnvelope(err)
	if !ok {
		t.Fatalf("want *ErrorEnvelope, got %T: %v", err, err)
	}
	if envelope.Code != protocol.CodeNotFound {
		t.Errorf("code = %s", envelope.Code)
	}
}

func TestPutReplacesExistingSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, sampleResult("sess-1", time.Now())); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	replacement := &protocol.DetectionResult{
		SessionID: "sess-1",
		Elements: map[string]protocol.DetectedElement{
			"L1": {ID: "L1", Role: "link", Label: "Home", IsActionable: true},
		},
	}
	if err := store.Put(ctx, replacement); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	fetched, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(fetched.Elements) != 1 {
		t.Errorf("element count = %d after replacement", len(fetched.Elements))
	}
	if _, ok := fetched.Elements["L1"]; !ok {
		t.Error("replacement elements missing")
	}
}

func TestPutRejectsEmptySessionID(t *testing.T) {
	store := openTestStore(t)
	err := store.Put(context.Background(), &protocol.DetectionResult{})
	envelope, ok := protocol.AsEnvelope(err)
	if !ok || envelope.Code != protocol.CodeInvalidRequest {
		t.Errorf("err = %v, want invalid-request envelope", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "middle", "new"} {
		result := sampleResult(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.Put(ctx, result); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("listed %d sessions", len(sessions))
	}
	for i, want := range []string{"new", "middle", "old"} {
		if sessions[i].ID != want {
			t.Errorf("sessions[%d] = %s, want %s", i, sessions[i].ID, want)
		}
	}
	if sessions[0].ElementCount != 2 {
		t.Errorf("element count = %d", sessions[0].ElementCount)
	}
}

func TestCleanRemovesOnlyOldSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, sampleResult("ancient", time.Now().Add(-2*time.Hour))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, sampleResult("fresh", time.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := store.Clean(ctx, time.Hour, false)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(removed) != 1 || removed[0].ID != "ancient" {
		t.Fatalf("removed = %v", removed)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "fresh" {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestCleanDryRunDeletesNothing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, sampleResult("doomed", time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	victims, err := store.Clean(ctx, 0, true)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(victims) != 1 {
		t.Fatalf("dry run reported %d victims", len(victims))
	}
	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("dry run deleted sessions: %d remain", len(sessions))
	}
}

func TestCleanZeroAgeRemovesEverything(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := store.Put(ctx, sampleResult(id, time.Now().Add(-time.Second))); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	removed, err := store.Clean(ctx, 0, false)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("removed %d sessions, want 2", len(removed))
	}
}
