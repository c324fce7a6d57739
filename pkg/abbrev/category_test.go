package abbrev

import (
	"errors"
	"testing"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		input string
		want  Table
	}{
		{"title", PhraseTable(Title)},
		{"container-title", PhraseTable(ContainerTitle)},
		{"container-title-word", WordTable(ContainerTitle)},
		{"institution-part-word", WordTable(InstitutionPart)},
		{" place ", PhraseTable(Place)},
		{"hereinafter", PhraseTable(Hereinafter)},
	}
	for _, tt := range tests {
		got, err := ParseTable(tt.input)
		if err != nil {
			t.Errorf("ParseTable(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTable(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseTable_Unknown(t *testing.T) {
	for _, input := range []string{"hereinafter-word", "nickname", "", "-word", "title-words"} {
		if _, err := ParseTable(input); !errors.Is(err, ErrUnknownTable) {
			t.Errorf("ParseTable(%q) err = %v, want ErrUnknownTable", input, err)
		}
	}
}

func TestTableString(t *testing.T) {
	for _, c := range Categories {
		for _, tbl := range []Table{PhraseTable(c), WordTable(c)} {
			if tbl.Word && !c.HasWordTable() {
				continue
			}
			got, err := ParseTable(tbl.String())
			if err != nil {
				t.Fatalf("ParseTable(%q): %v", tbl.String(), err)
			}
			if got != tbl {
				t.Errorf("ParseTable(%q) = %+v, want %+v", tbl.String(), got, tbl)
			}
		}
	}
}

func TestHasWordTable(t *testing.T) {
	if Hereinafter.HasWordTable() {
		t.Error("hereinafter must not have a word table")
	}
	if !Title.HasWordTable() {
		t.Error("title must have a word table")
	}
	if Category("bogus").HasWordTable() {
		t.Error("unknown category must not have a word table")
	}
}
