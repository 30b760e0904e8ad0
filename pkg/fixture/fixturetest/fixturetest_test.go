package fixturetest_test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/fixturetest"
	"github.com/randalmurphal/fixturekit/pkg/fixture/loader"
)

type Order struct {
	ID    int    `json:"id"`
	State string `json:"state"`
}

type Item struct {
	SKU string `json:"sku"`
}

// recorder is a testing.TB that records failures instead of failing the
// enclosing test.
type recorder struct {
	testing.TB
	mu     sync.Mutex
	failed bool
	msgs   []string
}

func (r *recorder) Helper() {}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func (r *recorder) FailNow() {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	runtime.Goexit()
}

// run calls fn with a recorder on its own goroutine so FailNow can exit it.
func run(fn func(tb testing.TB)) *recorder {
	r := &recorder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(r)
	}()
	<-done
	return r
}

const orderDoc = `
data:
  order:
    id: 7
    state: open
  items:
    - sku: a
    - sku: b
metadata:
  version: 2
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderDoc), 0o600))

	fs := fixturetest.Load(t, path)
	assert.Equal(t, Order{ID: 7, State: "open"}, fixturetest.MustGet[Order](t, fs))
	assert.Equal(t, []Item{{"a"}, {"b"}}, fixturetest.MustGetAll[Item](t, fs, "items"))
	assert.Equal(t, "2", fixturetest.MustMetadata(t, fs, "version"))
}

func TestLoad_Fails(t *testing.T) {
	r := run(func(tb testing.TB) {
		fixturetest.Load(tb, filepath.Join(t.TempDir(), "absent.yaml"))
	})
	assert.True(t, r.failed)
	require.NotEmpty(t, r.msgs)
	assert.Contains(t, r.msgs[0], "absent.yaml")
}

func TestParse(t *testing.T) {
	fs := fixturetest.Parse(t, loader.FormatJSON, `{"data":{"order":{"id":1,"state":"new"}}}`)
	assert.Equal(t, 1, fixturetest.MustGetKey[Order](t, fs, "order").ID)

	r := run(func(tb testing.TB) {
		fixturetest.Parse(tb, loader.FormatJSON, `[]`)
	})
	assert.True(t, r.failed)
}

func TestFromMap(t *testing.T) {
	fs := fixturetest.FromMap(t,
		map[string]any{"order": map[string]any{"id": 3}},
		map[string]any{"owner": "qa"},
		fixture.WithValue("items", []any{map[string]any{"sku": "c"}}),
	)
	assert.Equal(t, 3, fixturetest.MustGet[Order](t, fs).ID)
	assert.Equal(t, []string{"order", "items"}, fs.Keys())
	assert.Equal(t, "qa", fixturetest.MustMetadata(t, fs, "owner"))
}

func TestMust_Failures(t *testing.T) {
	fs := fixturetest.FromMap(t, map[string]any{
		"order": "not-an-order",
		"items": []any{map[string]any{"sku": "a"}, 5},
	}, nil)

	tests := []struct {
		name string
		fn   func(tb testing.TB)
	}{
		{"MustGet", func(tb testing.TB) { fixturetest.MustGet[Order](tb, fs) }},
		{"MustGetKey missing", func(tb testing.TB) { fixturetest.MustGetKey[Order](tb, fs, "absent") }},
		{"MustGetAll bad element", func(tb testing.TB) { fixturetest.MustGetAll[Item](tb, fs, "items") }},
		{"MustMetadata missing", func(tb testing.TB) { fixturetest.MustMetadata(tb, fs, "owner") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, run(tt.fn).failed)
		})
	}
}

func TestMustGetAll_MissingKeyIsEmpty(t *testing.T) {
	fs := fixturetest.FromMap(t, map[string]any{"order": map[string]any{"id": 1}}, nil)

	var got []Item
	r := run(func(tb testing.TB) {
		got = fixturetest.MustGetAll[Item](tb, fs, "absent")
	})
	assert.False(t, r.failed)
	assert.Empty(t, got)
}
