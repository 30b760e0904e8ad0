package loader_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/expand"
	"github.com/randalmurphal/fixturekit/pkg/fixture/loader"
)

type Widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

const yamlDoc = `
data:
  zeta:
    id: 1
    name: z
  widgets:
    - id: 1
      name: one
    - id: 2
      name: two
  alpha: plain
metadata:
  version: 3
  owner: qa
`

const jsonDoc = `{
  "data": {
    "zeta": {"id": 1, "name": "z"},
    "widgets": [{"id": 1, "name": "one"}, {"id": 2, "name": "two"}],
    "alpha": "plain"
  },
  "metadata": {"version": 3, "owner": "qa"}
}`

const tomlDoc = `
[data]
alpha = "plain"

[data.zeta]
id = 1
name = "z"

[[data.widgets]]
id = 1
name = "one"

[[data.widgets]]
id = 2
name = "two"

[metadata]
version = 3
owner = "qa"
`

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte, ...loader.Option) (*fixture.Store, error)
		input string
		keys  []string
	}{
		{"yaml", loader.FromYAML, yamlDoc, []string{"zeta", "widgets", "alpha"}},
		{"json", loader.FromJSON, jsonDoc, []string{"zeta", "widgets", "alpha"}},
		{"toml", loader.FromTOML, tomlDoc, []string{"alpha", "zeta", "widgets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.parse([]byte(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.keys, s.Keys())
			assert.Equal(t, []string{"version", "owner"}, s.MetadataKeys())

			z, err := fixture.RequireKey[Widget](s, "zeta")
			require.NoError(t, err)
			assert.Equal(t, Widget{ID: 1, Name: "z"}, z)

			widgets, err := fixture.RequireAllKey[Widget](s, "widgets")
			require.NoError(t, err)
			assert.Equal(t, []Widget{{1, "one"}, {2, "two"}}, widgets)

			version, ok := s.Metadata("version")
			require.True(t, ok)
			assert.Equal(t, "3", version)

			n, ok := fixture.MetadataAs[int](s, "version")
			require.True(t, ok)
			assert.Equal(t, 3, n)
		})
	}
}

func TestParse_EmptyDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format loader.Format
		input  string
	}{
		{"yaml empty", loader.FormatYAML, ""},
		{"yaml null", loader.FormatYAML, "~"},
		{"yaml null sections", loader.FormatYAML, "data:\nmetadata:\n"},
		{"json empty", loader.FormatJSON, ""},
		{"json null", loader.FormatJSON, "null"},
		{"json empty object", loader.FormatJSON, "{}"},
		{"json null sections", loader.FormatJSON, `{"data": null, "metadata": null}`},
		{"toml empty", loader.FormatTOML, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loader.Parse([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, 0, s.Len())
			_, ok := fixture.Get[Widget](s)
			assert.False(t, ok)
		})
	}
}

func TestParse_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format loader.Format
		input  string
	}{
		{"yaml list", loader.FormatYAML, "- a\n- b\n"},
		{"yaml data scalar", loader.FormatYAML, "data: 3\n"},
		{"json array", loader.FormatJSON, "[1, 2]"},
		{"json data array", loader.FormatJSON, `{"data": [1]}`},
		{"toml data scalar", loader.FormatTOML, "data = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.input), tt.format)
			assert.ErrorIs(t, err, loader.ErrInvalidDocument)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	_, err := loader.FromYAML([]byte("data: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = loader.FromJSON([]byte(`{"data": {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")

	_, err = loader.FromTOML([]byte("[data\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse toml")
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := loader.Parse([]byte("{}"), loader.Format("xml"))
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestWithStrictKeys(t *testing.T) {
	input := []byte("data:\n  a: 1\nextras: true\n")

	s, err := loader.FromYAML(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, s.Keys())

	_, err = loader.FromYAML(input, loader.WithStrictKeys())
	assert.ErrorIs(t, err, loader.ErrUnknownKey)
	assert.Contains(t, err.Error(), "extras")
}

func TestWithVariables(t *testing.T) {
	input := []byte(`
data:
  widget:
    id: 7
    name: ${tenant}-widget
metadata:
  owner: $team
`)

	s, err := loader.FromYAML(input, loader.WithVariables(map[string]any{"tenant": "acme", "team": "qa"}))
	require.NoError(t, err)

	w, err := fixture.Require[Widget](s)
	require.NoError(t, err)
	assert.Equal(t, "acme-widget", w.Name)

	owner, _ := s.Metadata("owner")
	assert.Equal(t, "qa", owner)

	_, err = loader.FromYAML(input,
		loader.WithVariables(map[string]any{"tenant": "acme"}),
		loader.WithMissingVariables(expand.MissingError),
	)
	var uerr *expand.UndefinedVariableError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, []string{"team"}, uerr.Names)
}

func TestWithStoreOptions(t *testing.T) {
	s, err := loader.FromJSON([]byte(`{"data": {"a": 1}}`),
		loader.WithStoreOptions(fixture.WithValue("b", 2)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    loader.Format
		wantErr bool
	}{
		{"a.yaml", loader.FormatYAML, false},
		{"a.YML", loader.FormatYAML, false},
		{"dir/a.json", loader.FormatJSON, false},
		{"a.toml", loader.FormatTOML, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := loader.FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := loader.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, loader.FormatYAML, f)
	_, err = loader.ParseFormat("ini")
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromFile(t *testing.T) {
	for name, content := range map[string]string{
		"orders.yaml": yamlDoc,
		"orders.json": jsonDoc,
		"orders.toml": tomlDoc,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := loader.FromFile(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, 3, s.Len())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := loader.FromFile(writeFile(t, "orders.ini", "x=1"))
		assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
	})
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "orders.yaml", yamlDoc)
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := loader.Load(context.Background(), path,
		loader.WithLogger(logger),
		loader.WithMetrics(true),
		loader.WithTracing(true),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Contains(t, buf.String(), "fixture loaded")

	buf.Reset()
	_, _ = fixture.GetKey[Widget](s, "absent")
	assert.Contains(t, buf.String(), path, "store logger carries the source path")
}

func TestLoad_SpanEvent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	path := writeFile(t, "orders.yaml", yamlDoc)
	_, err := loader.Load(context.Background(), path,
		loader.WithTracing(true),
		loader.WithVariables(map[string]any{"env": "qa"}),
	)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fixture.load", spans[0].Name())

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "fixture.parsed", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.Int("fixture.data_keys", 3))
	assert.Contains(t, events[0].Attributes, attribute.Int("fixture.variables", 1))
}

func TestLoad_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"),
		loader.WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "fixture load failed")
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, writeFile(t, "a.yaml", yamlDoc))
	assert.ErrorIs(t, err, context.Canceled)
}
