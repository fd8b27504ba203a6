package wordsrc

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openTestDB(t *testing.T) *DBSource {
	t.Helper()
	s, err := OpenDB(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDBLookup(t *testing.T) {
	s := openTestDB(t)
	for w, f := range map[string]int{
		"father": 50,
		"fathom": 40,
		"gather": 30,
		"fat":    99,
	} {
		if err := s.AddWord(w, f); err != nil {
			t.Fatalf("AddWord(%q): %v", w, err)
		}
	}
	if n, err := s.Len(); err != nil || n != 4 {
		t.Fatalf("Len = %d, %v; want 4", n, err)
	}

	got, err := s.Lookup("f?th??", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := []string{"father", "fathom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestDBLookupExcludeAndErrors(t *testing.T) {
	s := openTestDB(t)
	if err := s.AddWord("hello", 1); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	got, err := s.Lookup("h????", func(w string) bool { return w == "hello" })
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("excluded word returned: %v", got)
	}

	if _, err := s.Lookup("", nil); err == nil {
		t.Error("empty pattern accepted")
	}
	if err := s.AddWord("1234", 1); err == nil {
		t.Error("numeric word accepted")
	}
}

func TestDBUpsertReplacesFrequency(t *testing.T) {
	s := openTestDB(t)
	if err := s.AddWord("word", 1); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if err := s.AddWord("WORD", 7); err != nil {
		t.Fatalf("AddWord upsert: %v", err)
	}
	if n, _ := s.Len(); n != 1 {
		t.Errorf("Len = %d, want 1 (normalized upsert)", n)
	}
}
