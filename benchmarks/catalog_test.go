package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/catalog"
)

// BenchmarkMemoryStore_Save measures an in-memory catalog save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := catalog.NewMemoryStore()
	data := mustEncode(b, createLargeFixture())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Save("suite-1", docName(i%100), data)
	}
}

// BenchmarkMemoryStore_Load measures an in-memory catalog load.
func BenchmarkMemoryStore_Load(b *testing.B) {
	store := catalog.NewMemoryStore()
	_, _ = store.Save("suite-1", "doc-1", mustEncode(b, createLargeFixture()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load("suite-1", "doc-1")
	}
}

// BenchmarkSQLiteStore_Save measures a SQLite catalog save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	data := mustEncode(b, createLargeFixture())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Save("suite-1", docName(i%100), data)
	}
}

// BenchmarkSQLiteStore_Load measures a SQLite catalog load.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	_, _ = store.Save("suite-1", "doc-1", mustEncode(b, createLargeFixture()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load("suite-1", "doc-1")
	}
}

// BenchmarkCatalog_PutGet measures a full encode, save, load and decode.
func BenchmarkCatalog_PutGet(b *testing.B) {
	c := catalog.New(catalog.NewMemoryStore())
	fs := createLargeFixture()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Put(ctx, "suite-1", "doc-1", fs)
		_, _ = c.Get(ctx, "suite-1", "doc-1")
	}
}

// Helper functions

func docName(i int) string {
	return fmt.Sprintf("doc-%d", i)
}

func mustEncode(b *testing.B, fs *fixture.Store) []byte {
	b.Helper()
	data, err := json.Marshal(fs)
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func createSQLiteStore(b *testing.B) (*catalog.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	store, err := catalog.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}

	return store, func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
}
