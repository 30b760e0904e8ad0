/*
Package fixture provides typed access to test fixture data.

# Overview

A fixture is two string-keyed bags of already-decoded values (maps, slices
and scalars, as produced by a YAML, JSON or TOML decoder): data, holding the
inputs a test needs, and metadata, holding facts about the fixture itself.
Store retrieves entries from those bags and converts them into the types a
test asks for.

# Keys

Every data operation comes in two flavours: one taking an explicit key, and
one deriving the key from the requested type by lowercasing the first letter
of its name:

	type CreatePlatform struct {
	    Name string `json:"name"`
	}

	store := fixture.New(fixture.WithData(map[string]any{
	    "createPlatform": map[string]any{"name": "x"},
	}))

	p, ok := fixture.Get[CreatePlatform](store)             // key "createPlatform"
	p, ok = fixture.GetKey[CreatePlatform](store, "other")  // explicit key

Types whose fixture key does not follow the convention can be mapped with a
naming.Registry passed through WithNames.

# Lenient and strict lookups

Get and GetAll never fail. A nil type, blank key, empty store, missing key
or value that does not fit the requested type all produce "no value": false
from Get, an empty slice from GetAll.

Require turns every "no value" outcome of Get into an *AdaptationError
that matches ErrAdaptationFailed with errors.Is.

RequireAll treats a nil type, blank key, empty store or missing key as
"nothing to return" and yields an empty slice without error. Once a value
exists, the first element that cannot be converted fails the call, where
GetAll would have dropped it.

# Collections

GetAll and RequireAll accept either a list or a single value under a key:

	widgets:            # []Widget{{ID: 1}, {ID: 2}}
	  - id: 1
	  - id: 2
	widget:             # []Widget{{ID: 1}}
	  id: 1

# Metadata

Metadata lookups use a separate, weakly typed adapter: a metadata value of 3
reads back as "3" through Metadata and as 3 through MetadataAs[int].

# Descriptor forms

Go has no generic methods, so the generic functions are thin wrappers over
Store methods taking a reflect.Type (Store.Get, Store.Require, ...). Those
methods also serve callers that only know the type at runtime.

# Thread Safety

Store is safe for concurrent reads. Set, SetMetadata and Delete must not run
concurrently with any other call.
*/
package fixture
