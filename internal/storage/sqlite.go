// Package storage provides a SQLite journal of game sessions and their
// state transitions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. The journal is write-only from the game's point of view:
// sessions never restore state from it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSessionNotFound is returned when a session ID has no journal entry.
var ErrSessionNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one played session.
type SessionRecord struct {
	ID         string
	Mode       string
	Variant    string
	Level      string
	StartLives int
	FinalState string // Empty while the session is running
	LivesLeft  int
	Ticks      uint64
	StartedAt  time.Time
	EndedAt    time.Time // Zero while the session is running
}

// TransitionRecord is one journaled state change.
type TransitionRecord struct {
	ID        int64
	SessionID string
	Seq       int
	Tick      uint64
	FromState string
	ToState   string
	Lives     int
	CreatedAt time.Time
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
			mode TEXT NOT NULL,
			variant TEXT NOT NULL,
			level TEXT NOT NULL,
			start_lives INTEGER NOT NULL,
			final_state TEXT NOT NULL DEFAULT '',
			lives_left INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			from_state TEXT NOT NULL,
			to_state TEXT NOT NULL,
			lives INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(session_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_transitions_session ON transitions(session_id, seq);
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

// BeginSession records the start of a session.
func (s *Store) BeginSession(rec SessionRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, mode, variant, level, start_lives, lives_left, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Variant, rec.Level, rec.StartLives, rec.StartLives, rec.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin session %s: %w", rec.ID, err)
	}
	return nil
}

// EndSession stores the final state of a session.
func (s *Store) EndSession(id, finalState string, livesLeft int, ticks uint64) error {
	result, err := s.db.Exec(
		`UPDATE sessions
		 SET final_state = ?, lives_left = ?, ticks = ?, ended_at = ?
		 WHERE id = ?`,
		finalState, livesLeft, int64(ticks), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// RecordTransition appends a transition to a session's journal.
// Returns the ID of the inserted record.
func (s *Store) RecordTransition(rec TransitionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO transitions (session_id, seq, tick, from_state, to_state, lives)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Seq, int64(rec.Tick), rec.FromState, rec.ToState, rec.Lives,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record transition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Session returns one session by ID.
func (s *Store) Session(id string) (SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, mode, variant, level, start_lives, final_state, lives_left, ticks, started_at, ended_at
		 FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return rec, err
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, variant, level, start_lives, final_state, lives_left, ticks, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Transitions returns a session's journal in order.
func (s *Store) Transitions(sessionID string) ([]TransitionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, seq, tick, from_state, to_state, lives, created_at
		 FROM transitions
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query transitions: %w", err)
	}
	defer rows.Close()

	var records []TransitionRecord
	for rows.Next() {
		var r TransitionRecord
		var tick int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Seq, &tick, &r.FromState, &r.ToState, &r.Lives, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Tick = uint64(tick)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var ticks int64
	var startedAt, endedAt any
	err := row.Scan(&rec.ID, &rec.Mode, &rec.Variant, &rec.Level, &rec.StartLives,
		&rec.FinalState, &rec.LivesLeft, &ticks, &startedAt, &endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.Ticks = uint64(ticks)
	rec.StartedAt = parseTime(startedAt)
	rec.EndedAt = parseTime(endedAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
