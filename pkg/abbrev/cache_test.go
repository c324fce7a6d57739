package abbrev

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCache_RecordSeedsCategories(t *testing.T) {
	c := NewCache()
	c.Record("us", Place, "New York", "N.Y.")

	want := Snapshot{"us": seededTables(map[Category]map[string]string{
		Place: {"New York": "N.Y."},
	})}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_OverwriteKeepsSize(t *testing.T) {
	c := NewCache()
	c.Record("default", Title, "Nature", "Nature")
	c.Record("default", Title, "Nature", "Nat.")
	c.Record("fr", Title, "Nature", "Nat.")

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if v, ok := c.Lookup("default", Title, "Nature"); !ok || v != "Nat." {
		t.Errorf("Lookup = %q, %v, want %q, true", v, ok, "Nat.")
	}
	if _, ok := c.Lookup("us", Title, "Nature"); ok {
		t.Error("Lookup in unseen jurisdiction should miss")
	}
}

func TestCache_SnapshotIsCopy(t *testing.T) {
	c := NewCache()
	c.Record("default", InstitutionPart, "Supreme Court", "S. Ct.")

	snap := c.Snapshot()
	snap["default"][InstitutionPart]["Supreme Court"] = "changed"
	delete(snap, "default")

	if v, _ := c.Lookup("default", InstitutionPart, "Supreme Court"); v != "S. Ct." {
		t.Errorf("cache mutated through snapshot: %q", v)
	}
}

func TestCache_Reset(t *testing.T) {
	c := NewCache()
	c.Record("default", InstitutionPart, "Supreme Court", "S. Ct.")
	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d", c.Len())
	}
	if diff := cmp.Diff(Snapshot{}, c.Snapshot()); diff != "" {
		t.Errorf("snapshot after Reset (-want +got):\n%s", diff)
	}
}
