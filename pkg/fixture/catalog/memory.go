package catalog

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps documents in memory. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	suites map[string]map[string]storedDoc // suite -> name -> doc
	closed bool
}

type storedDoc struct {
	data      []byte
	revision  string
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		suites: make(map[string]map[string]storedDoc),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(suite, name string, doc []byte) (Info, error) {
	if err := validate(suite, name); err != nil {
		return Info{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	docs := m.suites[suite]
	if docs == nil {
		docs = make(map[string]storedDoc)
		m.suites[suite] = docs
	}

	seq := 1
	for _, d := range docs {
		if d.sequence >= seq {
			seq = d.sequence + 1
		}
	}

	stored := storedDoc{
		data:      append([]byte(nil), doc...),
		revision:  newRevision(),
		sequence:  seq,
		timestamp: time.Now().UTC(),
	}
	docs[name] = stored
	return stored.info(suite, name), nil
}

// Load implements Store.
func (m *MemoryStore) Load(suite, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	d, ok := m.suites[suite][name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), d.data...), nil
}

// List implements Store.
func (m *MemoryStore) List(suite string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	docs := m.suites[suite]
	infos := make([]Info, 0, len(docs))
	for name, d := range docs {
		infos = append(infos, d.info(suite, name))
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})
	return infos, nil
}

// Suites implements Store.
func (m *MemoryStore) Suites() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	names := make([]string, 0, len(m.suites))
	for suite, docs := range m.suites {
		if len(docs) > 0 {
			names = append(names, suite)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(suite, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if docs, ok := m.suites[suite]; ok {
		delete(docs, name)
		if len(docs) == 0 {
			delete(m.suites, suite)
		}
	}
	return nil
}

// DeleteSuite implements Store.
func (m *MemoryStore) DeleteSuite(suite string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.suites, suite)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.suites = nil
	return nil
}

// Len returns the number of documents across all suites.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, docs := range m.suites {
		count += len(docs)
	}
	return count
}

func (d storedDoc) info(suite, name string) Info {
	return Info{
		Suite:     suite,
		Name:      name,
		Revision:  d.revision,
		Sequence:  d.sequence,
		Timestamp: d.timestamp,
		Size:      int64(len(d.data)),
	}
}
