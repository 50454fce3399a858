package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rnwolfe/tally/internal/config"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the tally database.
func Open() (*DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}
	return OpenPath(paths.DBFile)
}

// OpenPath opens the database at an explicit path, running migrations.
func OpenPath(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate runs all schema migrations.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		// Dates are ISO-8601 text; the engine parses them on read.
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			link TEXT DEFAULT '',
			note TEXT DEFAULT '',
			importance INTEGER NOT NULL DEFAULT 0,
			complexity INTEGER NOT NULL DEFAULT 3,
			points INTEGER NOT NULL DEFAULT 0,
			planned_date TEXT,
			due_date TEXT,
			parent_id TEXT,
			done INTEGER DEFAULT 0,
			completed_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_done ON tasks(done)`,
		// Key-value store for misc state
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	// ALTER TABLE cannot use IF NOT EXISTS; SQLite reports
	// "duplicate column name" when the column is already there.
	alterMigrations := []string{
		`ALTER TABLE tasks ADD COLUMN tags TEXT DEFAULT ''`,
	}
	for _, m := range alterMigrations {
		if _, err := db.conn.Exec(m); err != nil {
			if !strings.Contains(err.Error(), "duplicate column name") {
				return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
			}
		}
	}

	return nil
}

// GetKV returns a value from the kv table. ok is false when the key is absent.
func (db *DB) GetKV(key string) (value string, ok bool, err error) {
	err = db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetKV upserts a value in the kv table.
func (db *DB) SetKV(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}
