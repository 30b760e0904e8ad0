package main

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/randalmurphal/fixturekit/pkg/fixture/adapt"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

// write encodes v to w as YAML or indented JSON. YAML output goes through
// JSON, so a *fixture.Store prints as its data/metadata document.
func write(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case outputJSON:
		out, err = json.MarshalIndent(adapt.Plain(v), "", "  ")
		out = append(out, '\n')
	case outputYAML:
		out, err = yaml.Marshal(adapt.Plain(v))
	default:
		return fmt.Errorf("unknown output format %q (valid: yaml, json)", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}
