// Package loader builds fixture stores from YAML, JSON and TOML documents.
//
// A fixture document has two top-level mappings:
//
//	data:
//	  createPlatform:
//	    name: edge
//	  widgets:
//	    - id: 1
//	    - id: 2
//	metadata:
//	  version: 3
//
// Either may be absent. The order of keys inside data and metadata is kept.
// Other top-level keys are ignored unless WithStrictKeys is given.
//
// String values may contain ${name} placeholders, filled in with
// WithVariables before the store is built.
package loader
