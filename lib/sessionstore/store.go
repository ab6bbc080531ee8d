// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package sessionstore persists detection results between calls. A
// detection session maps element IDs (B1, T2, ...) to screen
// coordinates; input operations resolve those IDs later, possibly
// from a different connection, so the store outlives any single
// client.
//
// Storage is SQLite in WAL mode behind a fixed-size connection pool.
// Element maps are stored as one CBOR blob per session; the queries
// only ever need whole-session granularity.
package sessionstore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/peekaboo-foundation/peekaboo/lib/codec"
	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Config holds the parameters for opening a store. Path is required;
// everything else has defaults.
type Config struct {
	// Path is the database file. Created if absent; the parent
	// directory must exist. ":memory:" works for tests with
	// PoolSize 1.
	Path string

	// PoolSize is the number of pooled connections. Zero means
	// max(runtime.NumCPU(), 4).
	PoolSize int

	// Logger receives pool lifecycle messages. Nil means a no-op
	// logger.
	Logger *slog.Logger
}

// Store is a concurrent-safe detection-session store.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	created_at_ns INTEGER NOT NULL,
	element_count INTEGER NOT NULL,
	elements      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_created_at ON sessions (created_at_ns);
`

// Open creates or opens the store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sessionstore: Path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
		if poolSize < 4 {
			poolSize = 4
		}
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: opening %s: %w", cfg.Path, err)
	}
	logger.Info("session store opened", "path", cfg.Path, "pool_size", poolSize)
	return &Store{pool: pool, logger: logger, path: cfg.Path}, nil
}

// prepareConnection applies pragmas and ensures the schema. Runs once
// per pooled connection, on first use.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sessionstore: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("sessionstore: creating schema: %w", err)
	}
	return nil
}

// Close closes the pool. Blocks until borrowed connections return.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("sessionstore: closing %s: %w", s.path, err)
	}
	s.logger.Info("session store closed", "path", s.path)
	return nil
}

// Put stores a detection result, replacing any session with the same
// ID. A zero CreatedAt is stamped with the current time.
func (s *Store) Put(ctx context.Context, result *protocol.DetectionResult) error {
	if result.SessionID == "" {
		return protocol.NewError(protocol.CodeInvalidRequest, "detection result has no session id")
	}
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	elements, err := codec.Marshal(result.Elements)
	if err != nil {
		return fmt.Errorf("sessionstore: encoding elements: %w", err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sessionstore: take: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO sessions (id, created_at_ns, element_count, elements)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   created_at_ns = excluded.created_at_ns,
		   element_count = excluded.element_count,
		   elements      = excluded.elements`,
		&sqlitex.ExecOptions{
			Args: []any{result.SessionID, createdAt.UnixNano(), len(result.Elements), elements},
		})
	if err != nil {
		return fmt.Errorf("sessionstore: storing session %s: %w", result.SessionID, err)
	}
	return nil
}

// Get fetches a stored detection result. A missing session is
// reported as a not-found envelope.
func (s *Store) Get(ctx context.Context, sessionID string) (*protocol.DetectionResult, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: take: %w", err)
	}
	defer s.pool.Put(conn)

	var result *protocol.DetectionResult
	err = sqlitex.Execute(conn,
		`SELECT created_at_ns, elements FROM sessions WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				blob := make([]byte, stmt.ColumnLen(1))
				stmt.ColumnBytes(1, blob)
				var elements map[string]protocol.DetectedElement
				if err := codec.Unmarshal(blob, &elements); err != nil {
					return fmt.Errorf("decoding elements: %w", err)
				}
				result = &protocol.DetectionResult{
					SessionID: sessionID,
					Elements:  elements,
					CreatedAt: time.Unix(0, stmt.ColumnInt64(0)).UTC(),
				}
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: fetching session %s: %w", sessionID, err)
	}
	if result == nil {
		return nil, protocol.Errorf(protocol.CodeNotFound, "no detection session %q", sessionID)
	}
	return result, nil
}

// List returns summaries of all stored sessions, newest first.
func (s *Store) List(ctx context.Context) ([]protocol.SessionInfo, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: take: %w", err)
	}
	defer s.pool.Put(conn)
	return listSessions(conn, "SELECT id, created_at_ns, element_count FROM sessions ORDER BY created_at_ns DESC", nil)
}

// Clean removes sessions older than the given age and returns their
// summaries. Zero age removes everything. With dryRun the matching
// sessions are returned but nothing is deleted.
func (s *Store) Clean(ctx context.Context, olderThan time.Duration, dryRun bool) ([]protocol.SessionInfo, error) {
	cutoff := time.Now().Add(-olderThan).UnixNano()

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: take: %w", err)
	}
	defer s.pool.Put(conn)

	victims, err := listSessions(conn,
		"SELECT id, created_at_ns, element_count FROM sessions WHERE created_at_ns <= ? ORDER BY created_at_ns DESC",
		[]any{cutoff})
	if err != nil {
		return nil, err
	}
	if dryRun || len(victims) == 0 {
		return victims, nil
	}

	err = sqlitex.Execute(conn,
		"DELETE FROM sessions WHERE created_at_ns <= ?",
		&sqlitex.ExecOptions{Args: []any{cutoff}})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: cleaning sessions: %w", err)
	}
	s.logger.Debug("sessions cleaned", "count", len(victims))
	return victims, nil
}

func listSessions(conn *sqlite.Conn, query string, args []any) ([]protocol.SessionInfo, error) {
	var sessions []protocol.SessionInfo
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			sessions = append(sessions, protocol.SessionInfo{
				ID:           stmt.ColumnText(0),
				CreatedAt:    time.Unix(0, stmt.ColumnInt64(1)).UTC(),
				ElementCount: int(stmt.ColumnInt64(2)),
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: listing sessions: %w", err)
	}
	return sessions, nil
}
