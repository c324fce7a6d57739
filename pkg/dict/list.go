package dict

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// Entry is one abbreviation row. Table is the textual table name
// ("container-title", "title-word", ...); Key is stored as written in the
// source and normalized when applied to a dictionary.
type Entry struct {
	Jurisdiction string `json:"jurisdiction"`
	Table        string `json:"table"`
	Key          string `json:"key"`
	Value        string `json:"value"`
}

// List is one loaded abbreviation list with its manifest and rows.
type List struct {
	Manifest *Manifest `json:"manifest"`
	Entries  []Entry   `json:"-"`
}

// LoadList reads a manifest.yaml and loads rows from gob, sets YAML or csv.
// A data.gob next to the manifest wins over the declared data file.
func LoadList(dir string) (*List, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}
	l := &List{Manifest: manifest}

	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		if err := l.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("list %s: %w", manifest.ID, err)
		}
	} else {
		dataPath := filepath.Join(dir, manifest.DataFile)
		switch manifest.Method {
		case MethodGob:
			if err := l.loadGob(dataPath); err != nil {
				return nil, fmt.Errorf("list %s: %w", manifest.ID, err)
			}
		case MethodSets:
			sets, err := LoadSets(dataPath)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", manifest.ID, err)
			}
			for _, s := range sets {
				l.Entries = append(l.Entries, s.Entries...)
			}
		default:
			if err := l.loadCSV(dataPath); err != nil {
				return nil, fmt.Errorf("list %s: %w", manifest.ID, err)
			}
		}
	}

	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("list %s: %w", manifest.ID, err)
	}
	return l, nil
}

func (l *List) validate() error {
	for i, e := range l.Entries {
		if _, err := abbrev.ParseTable(e.Table); err != nil {
			return fmt.Errorf("entry %d (%q): %w", i, e.Key, err)
		}
	}
	return nil
}

// Apply adds every entry of l to d and returns the number of entries that
// replaced an existing one.
func (l *List) Apply(d *abbrev.Dictionary) (collisions int, err error) {
	return applyEntries(d, l.Entries)
}

func applyEntries(d *abbrev.Dictionary, entries []Entry) (int, error) {
	var collisions int
	for _, e := range entries {
		t, err := abbrev.ParseTable(e.Table)
		if err != nil {
			return collisions, err
		}
		if d.Add(e.Jurisdiction, t, e.Key, e.Value) {
			collisions++
		}
	}
	return collisions, nil
}

func (l *List) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	format := l.Manifest.Format
	r, err := NewCSVReader(f, format.Encoding, format.Delimiter)
	if err != nil {
		return err
	}

	var header []string
	if format.HasHeader {
		header, err = r.Read()
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		}
	}

	keyIdx, err := columnIndex(header, format.KeyColumn, 0)
	if err != nil {
		return err
	}
	valueIdx, err := columnIndex(header, format.ValueColumn, 1)
	if err != nil {
		return err
	}
	jurIdx, err := columnIndex(header, format.JurisdictionColumn, -1)
	if err != nil {
		return err
	}
	catIdx, err := columnIndex(header, format.CategoryColumn, -1)
	if err != nil {
		return err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(record) {
			continue
		}
		key := strings.TrimSpace(record[keyIdx])
		if key == "" {
			continue
		}

		e := Entry{
			Jurisdiction: l.Manifest.Jurisdiction,
			Table:        l.Manifest.Category,
			Key:          key,
		}
		if valueIdx < len(record) {
			e.Value = strings.TrimSpace(record[valueIdx])
		}
		if v := field(record, jurIdx); v != "" {
			e.Jurisdiction = v
		}
		if v := field(record, catIdx); v != "" {
			e.Table = v
		}
		l.Entries = append(l.Entries, e)
	}
	return nil
}

// NewCSVReader wraps r in a lenient csv.Reader, transcoding non-UTF-8
// encodings declared in a manifest.
func NewCSVReader(r io.Reader, encoding, delimiter string) (*csv.Reader, error) {
	if encoding != "" && !isUTF8(encoding) {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}
	cr := csv.NewReader(r)
	if delimiter != "" {
		cr.Comma = []rune(delimiter)[0]
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr, nil
}

// columnIndex resolves a named column. An empty name yields def.
func columnIndex(header []string, name string, def int) (int, error) {
	if name == "" {
		return def, nil
	}
	if header == nil {
		return 0, fmt.Errorf("column %q needs has_header", name)
	}
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
