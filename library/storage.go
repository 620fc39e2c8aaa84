package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keys. They mirror the browser client this tool replaces: one
// serialized user record and one opaque credential.
const (
	storeKeyUser  = "user"
	storeKeyToken = "authToken"
)

// Store is the durable client storage backing the session: a small SQLite
// key/value table that survives between runs.
type Store struct {
	db *sql.DB

	getStmt *sql.Stmt
	setStmt *sql.Stmt
	delStmt *sql.Stmt
}

// OpenStore opens (or creates) the state database at path, applies schema
// migrations, and prepares common statements.
func OpenStore(path string) (*Store, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases prepared statements and closes the DB.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.setStmt, s.delStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL keeps concurrent invocations from tripping over each other.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS session (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        );`); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

func (s *Store) prepareStatements() error {
	var err error
	if s.getStmt, err = s.db.Prepare(`SELECT value FROM session WHERE key=?`); err != nil {
		return err
	}
	if s.setStmt, err = s.db.Prepare(`INSERT INTO session(key,value) VALUES(?,?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value`); err != nil {
		return err
	}
	if s.delStmt, err = s.db.Prepare(`DELETE FROM session WHERE key=?`); err != nil {
		return err
	}
	return nil
}

// Get returns the stored value for key, and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.getStmt.QueryRow(key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.setStmt.Exec(key, value)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.delStmt.Exec(key)
	return err
}

// SaveUser persists the serialized user record.
func (s *Store) SaveUser(u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(storeKeyUser, string(data))
}

// LoadUser reads the persisted user record. A missing record yields
// (nil, nil); a corrupt one yields an error for the caller to log.
func (s *Store) LoadUser() (*User, error) {
	raw, ok, err := s.Get(storeKeyUser)
	if err != nil || !ok {
		return nil, err
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

// SaveToken persists the opaque auth credential.
func (s *Store) SaveToken(token string) error {
	return s.Set(storeKeyToken, token)
}

// LoadToken reads the persisted credential; absent yields "".
func (s *Store) LoadToken() (string, error) {
	token, _, err := s.Get(storeKeyToken)
	return token, err
}

// ClearSession removes both session keys.
func (s *Store) ClearSession() error {
	if err := s.Delete(storeKeyUser); err != nil {
		return err
	}
	return s.Delete(storeKeyToken)
}
