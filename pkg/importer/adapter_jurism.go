// CLAUDE:SUMMARY Import adapters for Juris-M abbreviation lists (JSON xdata: jurisdiction -> table -> key -> abbreviation).
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
)

const jurismBaseURL = "https://raw.githubusercontent.com/Juris-M/jurism-abbreviations/master/"

func init() {
	Register(&jurismAdapter{
		id:   "jurism-primary-us",
		list: "jurism-primary-us",
		file: "primary-us.json",
		desc: "Juris-M primary abbreviations, United States (courts, reporters, places)",
	})
	Register(&jurismAdapter{
		id:   "jurism-secondary-us-bluebook",
		list: "jurism-secondary-us-bluebook",
		file: "secondary-us-bluebook.json",
		desc: "Juris-M secondary abbreviations, Bluebook journal titles",
	})
}

type jurismAdapter struct {
	id, list, file, desc string
}

func (a *jurismAdapter) ID() string          { return a.id }
func (a *jurismAdapter) DictID() string      { return a.list }
func (a *jurismAdapter) Description() string { return a.desc }
func (a *jurismAdapter) DefaultURL() string  { return jurismBaseURL + a.file }
func (a *jurismAdapter) License() string     { return "CC0" }

func (a *jurismAdapter) Import(ctx context.Context, sourceURL, outputDir string) error {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	path, err := fetch(ctx, sourceURL, dlDir, ".json")
	if err != nil {
		return err
	}
	f, err := openText(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	entries, skipped, err := parseJurism(f)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Printf("  %d abbreviations (%d in unsupported tables skipped)\n", len(entries), skipped)

	return writeList(filepath.Join(outputDir, a.DictID()), entries, &dict.Manifest{
		ID:           a.DictID(),
		Version:      time.Now().UTC().Format("2006-01"),
		Jurisdiction: abbrev.DefaultJurisdiction,
		Source:       "Juris-M abbreviation list " + a.file,
		SourceURL:    sourceURL,
		License:      a.License(),
		Method:       dict.MethodGob,
	})
}

type jurismFile struct {
	XData map[string]map[string]map[string]string `json:"xdata"`
}

// parseJurism flattens a Juris-M list into rows, sorted by jurisdiction,
// table and key. Tables the resolver does not know (nickname, classic, ...)
// are counted in skipped.
func parseJurism(r io.Reader) (entries []dict.Entry, skipped int, err error) {
	var doc jurismFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("decode json: %w", err)
	}
	if doc.XData == nil {
		return nil, 0, fmt.Errorf("missing xdata object")
	}

	for _, jurisdiction := range sortedKeys(doc.XData) {
		tables := doc.XData[jurisdiction]
		for _, name := range sortedKeys(tables) {
			kv := tables[name]
			if _, err := abbrev.ParseTable(name); err != nil {
				skipped += len(kv)
				continue
			}
			for _, key := range sortedKeys(kv) {
				entries = append(entries, dict.Entry{
					Jurisdiction: jurisdiction,
					Table:        name,
					Key:          key,
					Value:        kv[key],
				})
			}
		}
	}
	return entries, skipped, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
