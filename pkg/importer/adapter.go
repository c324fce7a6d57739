// Package importer downloads public abbreviation lists and converts them into
// list directories (data.gob + manifest.yaml) readable by dict.Registry.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Adapter defines a source importer that downloads, transforms, and
// serializes an abbreviation list into gob format.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "issn-ltwa").
	ID() string
	// DictID returns the target list ID, also its directory name (e.g. "ltwa").
	DictID() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding the database.
	DefaultURL() string
	// License returns the license identifier for this source.
	License() string
	// Import downloads the source from sourceURL, transforms it, and writes
	// data.gob + manifest.yaml into a subdirectory of outputDir named after DictID().
	Import(ctx context.Context, sourceURL, outputDir string) error
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// Run imports adapter id into outputDir, using the URL stored in sources when
// available and the adapter default otherwise. It returns the list directory.
func Run(ctx context.Context, sources *SourceDB, id, outputDir string) (string, error) {
	a, err := Get(id)
	if err != nil {
		return "", err
	}
	url := a.DefaultURL()
	if sources != nil {
		if u, err := sources.GetURL(id); err == nil && u != "" {
			url = u
		}
	}
	if err := ensureDir(outputDir); err != nil {
		return "", err
	}
	if err := a.Import(ctx, url, outputDir); err != nil {
		return "", fmt.Errorf("import %s: %w", id, err)
	}
	return filepath.Join(outputDir, a.DictID()), nil
}
