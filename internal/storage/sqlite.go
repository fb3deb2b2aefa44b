// Package storage provides SQLite-based persistence for fold sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// A session stores the level it was played on and the ordered list of fold
// steps. Replaying the steps against the level's initial grid reproduces
// the live grid exactly, which is how saved sessions are restored and
// checked for consistency.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/foldspace/internal/fold"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionEntry summarizes one persisted session.
type SessionEntry struct {
	ID        string
	LevelID   string
	Folds     int
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
			level_id TEXT NOT NULL,
			player_x INTEGER NOT NULL,
			player_y INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level ON sessions(level_id);

		CREATE TABLE IF NOT EXISTS fold_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			fold_id INTEGER NOT NULL,
			anchor1_x INTEGER NOT NULL,
			anchor1_y INTEGER NOT NULL,
			anchor2_x INTEGER NOT NULL,
			anchor2_y INTEGER NOT NULL,
			player_x INTEGER NOT NULL,
			player_y INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(session_id, fold_id)
		);
		CREATE INDEX IF NOT EXISTS idx_fold_records_session ON fold_records(session_id, fold_id);
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

// CreateSession registers a new session for the given level and player
// start, returning the session id.
func (s *Store) CreateSession(levelID string, playerStart fold.Coord) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, level_id, player_x, player_y) VALUES (?, ?, ?, ?)",
		id, levelID, playerStart.X, playerStart.Y,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create session: %w", err)
	}
	return id, nil
}

// AppendFold persists one committed fold for the session.
func (s *Store) AppendFold(sessionID string, rec *fold.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO fold_records
			(session_id, fold_id, anchor1_x, anchor1_y, anchor2_x, anchor2_y, player_x, player_y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, rec.FoldID,
		rec.Anchor1.X, rec.Anchor1.Y, rec.Anchor2.X, rec.Anchor2.Y,
		rec.PlayerBefore.X, rec.PlayerBefore.Y,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append fold: %w", err)
	}
	return nil
}

// DeleteFold removes one persisted fold, mirroring an undo.
func (s *Store) DeleteFold(sessionID string, foldID int) error {
	_, err := s.db.Exec(
		"DELETE FROM fold_records WHERE session_id = ? AND fold_id = ?",
		sessionID, foldID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete fold: %w", err)
	}
	return nil
}

// SessionLevel returns the level id and player start of a session.
func (s *Store) SessionLevel(sessionID string) (string, fold.Coord, error) {
	row := s.db.QueryRow(
		"SELECT level_id, player_x, player_y FROM sessions WHERE id = ?",
		sessionID,
	)
	var levelID string
	var start fold.Coord
	if err := row.Scan(&levelID, &start.X, &start.Y); err != nil {
		return "", fold.Coord{}, fmt.Errorf("storage: cannot load session %s: %w", sessionID, err)
	}
	return levelID, start, nil
}

// SessionSteps returns the persisted fold steps of a session in fold order.
func (s *Store) SessionSteps(sessionID string) ([]fold.Step, error) {
	rows, err := s.db.Query(
		`SELECT anchor1_x, anchor1_y, anchor2_x, anchor2_y
		 FROM fold_records
		 WHERE session_id = ?
		 ORDER BY fold_id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load folds: %w", err)
	}
	defer rows.Close()

	var steps []fold.Step
	for rows.Next() {
		var st fold.Step
		if err := rows.Scan(&st.Anchor1.X, &st.Anchor1.Y, &st.Anchor2.X, &st.Anchor2.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan fold: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// RecentSessions lists the most recent sessions with their fold counts.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT s.id, s.level_id, COUNT(f.id), s.created_at
		 FROM sessions s
		 LEFT JOIN fold_records f ON f.session_id = s.id
		 GROUP BY s.id
		 ORDER BY s.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Folds, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
