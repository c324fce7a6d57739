package dict

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// Registry holds all loaded abbreviation lists and the dictionary merged
// from them. Reload swaps both atomically; a *abbrev.Dictionary handed out
// earlier stays valid and unchanged.
type Registry struct {
	mu       sync.RWMutex
	lists    map[string]*List
	dict     *abbrev.Dictionary
	dictsDir string
}

// NewRegistry creates a new empty registry for the given directory.
func NewRegistry(dictsDir string) *Registry {
	return &Registry{
		lists:    make(map[string]*List),
		dict:     abbrev.NewDictionary(),
		dictsDir: dictsDir,
	}
}

// Load scans the dicts directory, loads every list and merges them in sorted
// ID order into a new dictionary. Later lists win on key collisions.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.dictsDir)
	if err != nil {
		return fmt.Errorf("read dicts dir %s: %w", r.dictsDir, err)
	}

	lists := make(map[string]*List)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.dictsDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
			continue
		}
		l, err := LoadList(dir)
		if err != nil {
			return fmt.Errorf("load list %s: %w", entry.Name(), err)
		}
		if prev, dup := lists[l.Manifest.ID]; dup {
			return fmt.Errorf("duplicate list id %q in %s (already loaded with %d entries)",
				l.Manifest.ID, entry.Name(), len(prev.Entries))
		}
		lists[l.Manifest.ID] = l
	}

	d := abbrev.NewDictionary()
	for _, id := range sortedIDs(lists) {
		collisions, err := lists[id].Apply(d)
		if err != nil {
			return fmt.Errorf("apply list %s: %w", id, err)
		}
		if collisions > 0 {
			slog.Warn("key collisions after normalization", "list", id, "collisions", collisions)
		}
	}

	r.mu.Lock()
	r.lists = lists
	r.dict = d
	r.mu.Unlock()
	return nil
}

// Reload reloads all lists from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Dictionary returns the current merged dictionary. It must not be modified.
func (r *Registry) Dictionary() *abbrev.Dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dict
}

// ListInfo is the public metadata for a loaded list.
type ListInfo struct {
	ID           string `json:"id"`
	Version      string `json:"version"`
	Jurisdiction string `json:"jurisdiction"`
	Category     string `json:"category,omitempty"`
	Method       string `json:"method"`
	Source       string `json:"source"`
	SourceURL    string `json:"source_url,omitempty"`
	License      string `json:"license"`
	Entries      int    `json:"entries"`
}

// ListDicts returns metadata for all loaded lists, sorted by ID.
func (r *Registry) ListDicts() []ListInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ListInfo, 0, len(r.lists))
	for _, id := range sortedIDs(r.lists) {
		m := r.lists[id].Manifest
		infos = append(infos, ListInfo{
			ID:           m.ID,
			Version:      m.Version,
			Jurisdiction: m.Jurisdiction,
			Category:     m.Category,
			Method:       m.Method,
			Source:       m.Source,
			SourceURL:    m.SourceURL,
			License:      m.License,
			Entries:      len(r.lists[id].Entries),
		})
	}
	return infos
}

// DictCount returns the number of loaded lists.
func (r *Registry) DictCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lists)
}

// TotalEntries returns the number of distinct entries in the merged dictionary.
func (r *Registry) TotalEntries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dict.Len()
}

func sortedIDs(lists map[string]*List) []string {
	ids := make([]string, 0, len(lists))
	for id := range lists {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
