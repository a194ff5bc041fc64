// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons recorded with a session.
const (
	EndGameOver   = "game_over"
	EndQuit       = "quit"
	EndDisconnect = "disconnect"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned when a session ID does not exist.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is one finished run.
type Session struct {
	ID        string
	Variant   string
	Seed      int64
	Locked    int            // Pieces merged into the grid
	Counts    map[string]int // Spawned pieces per kind name
	EndReason string
	Duration  time.Duration
	CreatedAt time.Time
}

// VariantStats aggregates the sessions of one variant.
type VariantStats struct {
	Variant     string
	Sessions    int
	BestLocked  int
	AvgLocked   float64
	TotalLocked int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			locked INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS piece_counts (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (session_id, kind)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished run together with its per-kind counts.
// A new UUID is assigned when sess.ID is empty. Returns the session ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO sessions (id, variant, seed, locked, end_reason, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Variant, sess.Seed, sess.Locked, sess.EndReason,
		sess.Duration.Milliseconds(), sess.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	for kind, n := range sess.Counts {
		if _, err := tx.Exec(
			"INSERT INTO piece_counts (session_id, kind, count) VALUES (?, ?, ?)",
			sess.ID, kind, n,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save piece count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return sess.ID, nil
}

// RecentSessions returns the newest sessions first. An empty variant
// matches every variant. Limit defaults to 10.
func (s *Store) RecentSessions(variant string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, variant, seed, locked, end_reason, duration_ms, created_at FROM sessions`
	args := []any{}
	if variant != "" {
		query += ` WHERE variant = ?`
		args = append(args, variant)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range sessions {
		counts, err := s.pieceCounts(sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Counts = counts
	}
	return sessions, nil
}

// SessionByID returns one session, or ErrNotFound.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, variant, seed, locked, end_reason, duration_ms, created_at
		 FROM sessions WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sess.Counts, err = s.pieceCounts(id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var durationMS int64
	var createdAt any
	err := row.Scan(&sess.ID, &sess.Variant, &sess.Seed, &sess.Locked, &sess.EndReason, &durationMS, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, err
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot scan session: %w", err)
	}
	sess.Duration = time.Duration(durationMS) * time.Millisecond
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}

func (s *Store) pieceCounts(sessionID string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT kind, count FROM piece_counts WHERE session_id = ?", sessionID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query piece counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan piece count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// KindTotals sums the per-kind counts over every session of a variant.
func (s *Store) KindTotals(variant string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT pc.kind, SUM(pc.count)
		 FROM piece_counts pc JOIN sessions s ON s.id = pc.session_id
		 WHERE s.variant = ?
		 GROUP BY pc.kind`,
		variant,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query kind totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan kind total: %w", err)
		}
		totals[kind] = n
	}
	return totals, rows.Err()
}

// ClearSessions deletes all sessions of a variant.
func (s *Store) ClearSessions(variant string) error {
	_, err := s.db.Exec(
		"DELETE FROM piece_counts WHERE session_id IN (SELECT id FROM sessions WHERE variant = ?)",
		variant,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear piece counts: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// AllVariantStats returns aggregated statistics for every variant played.
func (s *Store) AllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(locked), AVG(locked), SUM(locked), MAX(created_at)
		 FROM sessions
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Sessions, &vs.BestLocked, &vs.AvgLocked, &vs.TotalLocked, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}
	return stats, rows.Err()
}

// FormatCounts renders per-kind counts as "I:3 L:1" in kind-name order.
func FormatCounts(counts map[string]int) string {
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s:%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// parseTime handles both time.Time and string datetime values from SQLite.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
