// CLAUDE:SUMMARY Gob serialization of abbreviation list rows for fast loading.
package dict

import (
	"encoding/gob"
	"fmt"
	"os"
)

// loadGob deserializes rows from a gob-encoded file into l.Entries.
func (l *List) loadGob(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&l.Entries); err != nil {
		return fmt.Errorf("decode gob: %w", err)
	}
	return nil
}

// SaveGob serializes rows to a gob-encoded file at path.
func SaveGob(entries []Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}
