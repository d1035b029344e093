// Package dataset reads and writes card dataset documents.
//
// The input document is either a single record or an ordered collection of
// records. It is normalized into a slice at load time so the engines never
// see the dual representation.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/noah-andersen/image-manager/internal/model"
)

// SnapshotName is the metadata file written next to the exported images.
const SnapshotName = "dataset_metadata.json"

// Load reads a dataset document from disk. A single-object document is
// returned as a one-element collection. On any parse failure no items are
// returned, so a caller's existing session is never half-replaced.
func Load(path string) ([]model.DatasetItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset document: %w", err)
	}
	return Parse(data)
}

// Parse normalizes raw document bytes into an item collection.
func Parse(data []byte) ([]model.DatasetItem, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dataset document is empty")
	}

	if trimmed[0] == '{' {
		var item model.DatasetItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, fmt.Errorf("failed to parse dataset document: %w", err)
		}
		return []model.DatasetItem{item}, nil
	}

	var items []model.DatasetItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset document: %w", err)
	}
	return items, nil
}

// WriteSnapshot serializes the full item collection, deleted and skipped
// items included, to the given path.
func WriteSnapshot(path string, items []model.DatasetItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize dataset snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset snapshot: %w", err)
	}
	return nil
}
