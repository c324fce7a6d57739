// CLAUDE:SUMMARY Import adapter for the ISSN List of Title Word Abbreviations (LTWA) into the container-title word table.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
)

func init() {
	Register(&ltwaAdapter{})
}

type ltwaAdapter struct{}

func (a *ltwaAdapter) ID() string     { return "issn-ltwa" }
func (a *ltwaAdapter) DictID() string { return "ltwa" }
func (a *ltwaAdapter) Description() string {
	return "ISSN List of Title Word Abbreviations (journal title words)"
}
func (a *ltwaAdapter) DefaultURL() string {
	return "https://www.issn.org/wp-content/uploads/2021/07/ltwa_20210702.csv"
}
func (a *ltwaAdapter) License() string { return "ISSN LTWA terms of use" }

// ltwaTable is the word table LTWA rows are written to.
var ltwaTable = abbrev.WordTable(abbrev.ContainerTitle)

func (a *ltwaAdapter) Import(ctx context.Context, sourceURL, outputDir string) error {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	path, err := fetch(ctx, sourceURL, dlDir, ".csv", ".txt")
	if err != nil {
		return err
	}
	f, err := openText(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	entries, err := parseLTWA(f)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Printf("  %d title words\n", len(entries))

	return writeList(filepath.Join(outputDir, a.DictID()), entries, &dict.Manifest{
		ID:           a.DictID(),
		Version:      time.Now().UTC().Format("2006-01"),
		Jurisdiction: abbrev.DefaultJurisdiction,
		Category:     ltwaTable.String(),
		Source:       "ISSN International Centre, LTWA",
		SourceURL:    sourceURL,
		License:      a.License(),
		Method:       dict.MethodGob,
	})
}

// parseLTWA reads the LTWA table. Columns: WORDS, ABBREVIATIONS, LANGUAGES;
// the delimiter (semicolon, tab or comma) is taken from the header line.
//
// A word ending in "-" is a stem and stays a partial-match key. "n.a." means
// the word is not abbreviated. Words starting with "-" are suffixes, which
// the word abbreviator cannot match, and are skipped.
func parseLTWA(r io.Reader) ([]dict.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))

	cr, err := dict.NewCSVReader(bytes.NewReader(data), "", detectDelimiter(string(firstLine)))
	if err != nil {
		return nil, err
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIdx := make(map[string]int)
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	wordCol, hasWord := colIdx["WORDS"]
	abbrCol, hasAbbr := colIdx["ABBREVIATIONS"]
	if !hasWord || !hasAbbr {
		return nil, fmt.Errorf("columns WORDS/ABBREVIATIONS not found in header %v", header)
	}

	var entries []dict.Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if wordCol >= len(record) || abbrCol >= len(record) {
			continue
		}
		word := strings.TrimSpace(record[wordCol])
		abbr := strings.TrimSpace(record[abbrCol])
		if word == "" || abbr == "" || strings.HasPrefix(word, "-") {
			continue
		}
		if strings.EqualFold(abbr, "n.a.") || strings.EqualFold(abbr, "n. a.") {
			abbr = strings.TrimSuffix(word, "-")
		}
		entries = append(entries, dict.Entry{
			Jurisdiction: abbrev.DefaultJurisdiction,
			Table:        ltwaTable.String(),
			Key:          word,
			Value:        abbr,
		})
	}
	return entries, nil
}

func detectDelimiter(line string) string {
	best, bestN := ",", 0
	for _, d := range []string{";", "\t", ","} {
		if n := strings.Count(line, d); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
