package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists documents to a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a catalog at path.
// Use ":memory:" for a throwaway catalog.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fixtures (
			suite TEXT NOT NULL,
			name TEXT NOT NULL,
			revision TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (suite, name)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(suite, name string, doc []byte) (Info, error) {
	if err := validate(suite, name); err != nil {
		return Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	if doc == nil {
		doc = []byte{}
	}
	info := Info{
		Suite:     suite,
		Name:      name,
		Revision:  newRevision(),
		Timestamp: time.Now().UTC(),
		Size:      int64(len(doc)),
	}

	err := s.db.QueryRow(`
		INSERT INTO fixtures (suite, name, revision, sequence, timestamp, data)
		VALUES (
			?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM fixtures WHERE suite = ?), 0) + 1,
			?, ?
		)
		ON CONFLICT(suite, name) DO UPDATE SET
			revision = excluded.revision,
			sequence = (SELECT MAX(sequence) FROM fixtures WHERE suite = excluded.suite) + 1,
			timestamp = excluded.timestamp,
			data = excluded.data
		RETURNING sequence
	`, suite, name, info.Revision, suite, info.Timestamp.Format(time.RFC3339Nano), doc).Scan(&info.Sequence)
	if err != nil {
		return Info{}, fmt.Errorf("save fixture: %w", err)
	}
	return info, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(suite, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM fixtures
		WHERE suite = ? AND name = ?
	`, suite, name).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	return data, nil
}

// List implements Store.
func (s *SQLiteStore) List(suite string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, revision, sequence, timestamp, LENGTH(data)
		FROM fixtures
		WHERE suite = ?
		ORDER BY sequence
	`, suite)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		info := Info{Suite: suite}
		var timestamp string
		if err := rows.Scan(&info.Name, &info.Revision, &info.Sequence, &timestamp, &info.Size); err != nil {
			return nil, fmt.Errorf("scan fixture info: %w", err)
		}
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixtures: %w", err)
	}
	return infos, nil
}

// Suites implements Store.
func (s *SQLiteStore) Suites() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT DISTINCT suite FROM fixtures ORDER BY suite`)
	if err != nil {
		return nil, fmt.Errorf("list suites: %w", err)
	}
	defer rows.Close()

	suites := []string{}
	for rows.Next() {
		var suite string
		if err := rows.Scan(&suite); err != nil {
			return nil, fmt.Errorf("scan suite: %w", err)
		}
		suites = append(suites, suite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suites: %w", err)
	}
	return suites, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(suite, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM fixtures WHERE suite = ? AND name = ?`, suite, name); err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	return nil
}

// DeleteSuite implements Store.
func (s *SQLiteStore) DeleteSuite(suite string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM fixtures WHERE suite = ?`, suite); err != nil {
		return fmt.Errorf("delete suite: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
