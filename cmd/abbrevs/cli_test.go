package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with a config path that does not exist, so every run
// starts from the defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestResolve_Sets(t *testing.T) {
	sets := filepath.Join(t.TempDir(), "sets.yaml")
	require.NoError(t, os.WriteFile(sets, []byte(`
- jurisdiction: default
  title-word:
    journal: J.
    of: of
  place:
    new york: N.Y.
`), 0o644))

	out, err := execute(t, "resolve", "--sets", sets, "-c", "title", "Journal of Biology", "Journal")
	require.NoError(t, err)
	assert.Equal(t, "J. of Biology\nJournal\n", out)

	out, err = execute(t, "resolve", "--sets", sets, "-c", "place", "--recorded", "New York")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "N.Y.\n"), out)
	assert.Contains(t, out, `"New York": "N.Y."`)
}

func TestResolve_Errors(t *testing.T) {
	_, err := execute(t, "resolve", "-c", "volume", "--sets", "x.yaml", "key")
	assert.Error(t, err, "unknown category")

	_, err = execute(t, "resolve", "--dicts-dir", filepath.Join(t.TempDir(), "missing"), "key")
	assert.Error(t, err, "missing dicts dir")

	_, err = execute(t, "resolve")
	assert.Error(t, err, "no key")
}

func TestImportThenResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("WORDS;ABBREVIATIONS;LANGUAGES\njournal;j.;eng\nphysic-;phys.;eng\nof;n.a.;eng\n"))
	}))
	defer ts.Close()
	dicts := filepath.Join(t.TempDir(), "dicts")

	_, err := execute(t, "--dicts-dir", dicts, "sources", "set-url", "issn-ltwa", ts.URL)
	require.NoError(t, err)

	out, err := execute(t, "--dicts-dir", dicts, "import", "issn-ltwa")
	require.NoError(t, err)
	assert.Contains(t, out, "[issn-ltwa] OK")

	out, err = execute(t, "--dicts-dir", dicts, "sources", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ts.URL)

	out, err = execute(t, "--dicts-dir", dicts, "resolve", "-c", "container-title", "Journal of Physics")
	require.NoError(t, err)
	assert.Equal(t, "J. of Phys.\n", out)
}

func TestImport_NoSource(t *testing.T) {
	_, err := execute(t, "--dicts-dir", t.TempDir(), "import")
	assert.Error(t, err)

	_, err = execute(t, "--dicts-dir", t.TempDir(), "import", "nope")
	assert.Error(t, err)
}
