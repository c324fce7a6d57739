// CLAUDE:SUMMARY Shared import utilities: HTTP download with retries, ZIP extraction, BOM-aware text reading, manifest + gob output.
package importer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/abbrev-registry/pkg/dict"
)

const userAgent = "abbrevs-importer/1"

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

// unzipFile extracts a ZIP archive to destDir and returns the extracted file paths.
func unzipFile(src, destDir string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var paths []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}

		out, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("create %s: %w", destPath, err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			rc.Close()
			out.Close()
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		rc.Close()
		out.Close()
		paths = append(paths, destPath)
	}
	return paths, nil
}

// fetch downloads sourceURL into dlDir. A ZIP archive (by extension or magic
// bytes) is extracted and the first file with one of exts is returned.
func fetch(ctx context.Context, sourceURL, dlDir string, exts ...string) (string, error) {
	dest := filepath.Join(dlDir, "source")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, dest); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if !isZip(dest) {
		return dest, nil
	}
	files, err := unzipFile(dest, dlDir)
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	for _, f := range files {
		for _, ext := range exts {
			if strings.HasSuffix(strings.ToLower(f), ext) {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("no %s file found in ZIP", strings.Join(exts, "/"))
}

func isZip(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return string(magic) == "PK\x03\x04"
}

// openText opens a text file, decoding UTF-16 when a BOM says so and
// dropping a UTF-8 BOM.
func openText(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return struct {
		io.Reader
		io.Closer
	}{transform.NewReader(f, dec), f}, nil
}

// writeList saves entries as data.gob and writes the manifest next to it.
func writeList(dir string, entries []dict.Entry, m *dict.Manifest) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := dict.SaveGob(entries, filepath.Join(dir, "data.gob")); err != nil {
		return fmt.Errorf("save gob: %w", err)
	}
	m.DataFile = "data.gob"
	return writeManifest(dir, m)
}

// writeManifest writes a Manifest as YAML to dir/manifest.yaml.
func writeManifest(dir string, m *dict.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
