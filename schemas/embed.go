// Package schemas holds the JSON Schema documents for persisted and loaded artifacts.
package schemas

import "embed"

// Files contains every *.schema.json document in this directory.
//
//go:embed *.schema.json
var Files embed.FS

const (
	// SavedSession validates documents handed to the persistence collaborator.
	SavedSession = "saved_session.schema.json"
	// Catalog validates suggestion catalog files.
	Catalog = "catalog.schema.json"
)
