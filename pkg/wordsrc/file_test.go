package wordsrc

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFilePlainList(t *testing.T) {
	path := writeFile(t, "words.txt", "delta\nalpha\ncharlie\n42\n")
	m, err := LoadFile(path, ' ')
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (numeric entry dropped)", m.Len())
	}
	got, _ := m.Lookup("?????", nil)
	// Equal frequency, so alphabetical.
	want := []string{"alpha", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLoadFileWithFrequencies(t *testing.T) {
	path := writeFile(t, "words.csv", "rare;2\ncommon;90\nmiddle;40\n")
	m, err := LoadFile(path, ';')
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got, _ := m.Lookup("??????", nil)
	want := []string{"common", "middle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want freq order %v", got, want)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"), ' '); err == nil {
		t.Error("LoadFile on missing file succeeded")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	src := NewMemorySource()
	src.AddWord("father", 50)
	src.AddWord("naïve", 30)
	src.AddWord("gather", 10)

	path := filepath.Join(t.TempDir(), "words.bin")
	if err := SaveBinary(src, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	loaded, err := LoadBinary(path)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if loaded.Len() != src.Len() {
		t.Fatalf("Len = %d, want %d", loaded.Len(), src.Len())
	}
	got, _ := loaded.Lookup("??ther", nil)
	want := []string{"father", "gather"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup after reload = %v, want %v", got, want)
	}
}

func TestLoadBinaryRejectsForeignFile(t *testing.T) {
	path := writeFile(t, "not.bin", "just text")
	if _, err := LoadBinary(path); err == nil {
		t.Error("LoadBinary accepted a non-compiled file")
	}
}
