package dict

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// writeTestList writes a manifest + data file in a temp directory and returns the list dir.
func writeTestList(t *testing.T, id, manifestBody, dataFile string, data []byte) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := "id: " + id + "\nversion: \"1.0\"\nsource: unit test\n" + manifestBody
	if err := os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if dataFile != "" {
		if err := os.WriteFile(filepath.Join(dir, dataFile), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const csvManifest = `jurisdiction: us
category: container-title
data_file: data.csv
format:
  delimiter: ";"
  has_header: true
  key_column: "title"
  value_column: "abbr"
`

func TestLoadList_CSV(t *testing.T) {
	dir := writeTestList(t, "journals", csvManifest, "data.csv",
		[]byte("title;abbr\nJournal of Law;J. L.\n;ignored\nYale Law Journal;Yale L.J.\n"))

	l, err := LoadList(dir)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if l.Manifest.ID != "journals" {
		t.Errorf("ID = %q, want journals", l.Manifest.ID)
	}
	if len(l.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (empty keys skipped)", len(l.Entries))
	}
	want := Entry{Jurisdiction: "us", Table: "container-title", Key: "Journal of Law", Value: "J. L."}
	if l.Entries[0] != want {
		t.Errorf("entries[0] = %+v, want %+v", l.Entries[0], want)
	}
}

func TestLoadList_Defaults(t *testing.T) {
	dir := writeTestList(t, "words", "category: title-word\n", "data.csv",
		[]byte("journal,J.\nreview,Rev.\n"))

	l, err := LoadList(dir)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if l.Manifest.Jurisdiction != abbrev.DefaultJurisdiction {
		t.Errorf("jurisdiction = %q, want default", l.Manifest.Jurisdiction)
	}
	if l.Manifest.Method != MethodCSV {
		t.Errorf("method = %q, want csv", l.Manifest.Method)
	}
	if len(l.Entries) != 2 || l.Entries[1].Value != "Rev." {
		t.Errorf("entries = %+v", l.Entries)
	}
}

func TestLoadList_PerRowColumns(t *testing.T) {
	manifest := `category: place
format:
  delimiter: ";"
  has_header: true
  key_column: key
  value_column: value
  jurisdiction_column: juris
  category_column: table
`
	dir := writeTestList(t, "mixed", manifest, "data.csv",
		[]byte("key;value;juris;table\nNew York;N.Y.;;\nCour de cassation;Cass.;fr;institution-entire\n"))

	l, err := LoadList(dir)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if got := l.Entries[0]; got.Jurisdiction != "default" || got.Table != "place" {
		t.Errorf("row 0 = %+v, want manifest defaults", got)
	}
	if got := l.Entries[1]; got.Jurisdiction != "fr" || got.Table != "institution-entire" {
		t.Errorf("row 1 = %+v, want per-row overrides", got)
	}
}

func TestLoadList_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Revue d'économie;Rev. écon.\n")
	if err != nil {
		t.Fatal(err)
	}
	manifest := "category: container-title\nformat:\n  delimiter: \";\"\n  encoding: iso-8859-1\n"
	dir := writeTestList(t, "latin1", manifest, "data.csv", []byte(encoded))

	l, err := LoadList(dir)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if l.Entries[0].Value != "Rev. écon." {
		t.Errorf("value = %q, want transcoded text", l.Entries[0].Value)
	}
}

func TestLoadList_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		data     string
	}{
		{"missing value column", csvManifest[:len(csvManifest)-len("  value_column: \"abbr\"\n")] + "  value_column: nope\n", "title;abbr\na;b\n"},
		{"unknown category", "category: nickname\n", "a,b\n"},
		{"hereinafter word table", "category: hereinafter-word\n", "a,b\n"},
		{"unknown per-row table", "category: place\nformat:\n  has_header: true\n  category_column: t\n", "k,v,t\na,b,bogus\n"},
		{"no table at all", "", "a,b\n"},
		{"unknown method", "method: pattern\ncategory: place\n", "a,b\n"},
		{"column without header", "category: place\nformat:\n  key_column: k\n", "a,b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTestList(t, "bad", tt.manifest, "data.csv", []byte(tt.data))
			if _, err := LoadList(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadList_UnknownTableIsErrUnknownTable(t *testing.T) {
	dir := writeTestList(t, "bad", "category: nickname\n", "data.csv", []byte("a,b\n"))
	_, err := LoadList(dir)
	if !errors.Is(err, abbrev.ErrUnknownTable) {
		t.Errorf("err = %v, want ErrUnknownTable", err)
	}
}

func TestListApply(t *testing.T) {
	l := &List{Entries: []Entry{
		{Jurisdiction: "us", Table: "container-title", Key: "The Journal of Law", Value: "J. L."},
		{Jurisdiction: "us", Table: "container-title", Key: "Journal of Law", Value: "J.L."},
		{Table: "title-word", Key: "journal", Value: "J."},
	}}
	d := abbrev.NewDictionary()

	collisions, err := l.Apply(d)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if collisions != 1 {
		t.Errorf("collisions = %d, want 1", collisions)
	}
	if v, ok := d.Lookup("us", abbrev.PhraseTable(abbrev.ContainerTitle), "journal of law"); !ok || v != "J.L." {
		t.Errorf("us container-title = %q, %v, want later row to win", v, ok)
	}
	if _, ok := d.Lookup("default", abbrev.WordTable(abbrev.Title), "journal"); !ok {
		t.Error("empty jurisdiction should land in default")
	}
}
