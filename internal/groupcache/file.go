package groupcache

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON cache document from path. Returns ok=false (no
// error) if the file does not exist — a missing cache is the normal
// first-run state, not a failure.
func LoadFile(path string) (Document, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("reading cache %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, false, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return doc, true, nil
}

// SaveFile writes doc to path as JSON.
func SaveFile(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	return nil
}
