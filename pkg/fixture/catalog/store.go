// Package catalog persists named fixture documents grouped into suites.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists fixture documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a document under (suite, name), replacing any previous
	// revision. The returned Info carries the new revision.
	Save(suite, name string, doc []byte) (Info, error)

	// Load retrieves a document.
	// Returns ErrNotFound if it doesn't exist.
	Load(suite, name string) ([]byte, error)

	// List returns the documents of a suite ordered by sequence.
	// Returns an empty slice (not error) for an unknown suite.
	List(suite string) ([]Info, error)

	// Suites returns the names of all suites, sorted.
	Suites() ([]string, error)

	// Delete removes a document.
	// Returns nil if it doesn't exist.
	Delete(suite, name string) error

	// DeleteSuite removes every document of a suite.
	DeleteSuite(suite string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored document without its content.
type Info struct {
	Suite     string
	Name      string
	Revision  string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates a document doesn't exist.
	ErrNotFound = errors.New("fixture not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("fixture catalog closed")

	// ErrInvalidName indicates a blank suite or document name.
	ErrInvalidName = errors.New("invalid fixture name")
)

// validate checks that suite and name are usable identifiers.
func validate(suite, name string) error {
	if strings.TrimSpace(suite) == "" {
		return fmt.Errorf("%w: suite is blank", ErrInvalidName)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidName)
	}
	return nil
}

func newRevision() string {
	return fmt.Sprintf("rev-%s", uuid.New().String()[:8])
}
