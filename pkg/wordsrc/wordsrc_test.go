package wordsrc

import (
	"errors"
	"reflect"
	"testing"
)

func TestMemoryLookupPattern(t *testing.T) {
	m := NewMemorySource()
	for w, f := range map[string]int{
		"father": 50,
		"fathom": 40,
		"gather": 30,
		"farmer": 20,
		"fat":    99,
	} {
		if !m.AddWord(w, f) {
			t.Fatalf("AddWord(%q) rejected", w)
		}
	}

	cases := []struct {
		pattern     string
		want        []string
		description string
	}{
		{"f?th??", []string{"father", "fathom"}, "fixed letters and wildcards"},
		{"??ther", []string{"father", "gather"}, "leading wildcards force full scan"},
		{"??????", []string{"father", "fathom", "gather", "farmer"}, "all wildcards, freq order"},
		{"fat", []string{"fat"}, "no wildcards, exact word"},
		{"z?????", nil, "no match"},
		{"??", nil, "no words of that length"},
	}
	for _, tc := range cases {
		got, err := m.Lookup(tc.pattern, nil)
		if err != nil {
			t.Errorf("%s: Lookup(%q): %v", tc.description, tc.pattern, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: Lookup(%q) = %v, want %v", tc.description, tc.pattern, got, tc.want)
		}
	}
}

func TestMemoryLookupExcludes(t *testing.T) {
	m := FromWords([]string{"hello", "house", "haste"})
	blocked := map[string]struct{}{"house": {}}
	got, err := m.Lookup("h????", func(w string) bool {
		_, ok := blocked[w]
		return ok
	})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	for _, w := range got {
		if w == "house" {
			t.Error("excluded word returned")
		}
	}
	if len(got) != 2 {
		t.Errorf("got %v, want 2 words", got)
	}
}

func TestMemoryNormalization(t *testing.T) {
	m := NewMemorySource()
	m.AddWord("  HELLO ", 1)
	m.AddWord("Café", 5)

	if got, _ := m.Lookup("hello", nil); len(got) != 1 || got[0] != "hello" {
		t.Errorf("case-folded lookup = %v", got)
	}
	if got, _ := m.Lookup("caf?", nil); len(got) != 1 || got[0] != "café" {
		t.Errorf("diacritic lookup = %v", got)
	}
}

func TestMemoryRejectsUnusableWords(t *testing.T) {
	m := NewMemorySource()
	for _, w := range []string{"", "a", "x1y", "two words", "semi;colon"} {
		if m.AddWord(w, 1) {
			t.Errorf("AddWord(%q) accepted", w)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestInvalidPattern(t *testing.T) {
	m := FromWords([]string{"word"})
	for _, pattern := range []string{"", "wo4d", "w rd"} {
		_, err := m.Lookup(pattern, nil)
		var bad *InvalidPatternError
		if !errors.As(err, &bad) {
			t.Errorf("Lookup(%q) err = %v, want InvalidPatternError", pattern, err)
		}
	}
}

func TestFromWordsPreservesOrder(t *testing.T) {
	m := FromWords([]string{"pear", "plum", "pine"})
	got, err := m.Lookup("p???", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := []string{"pear", "plum", "pine"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want list order %v", got, want)
	}
}

func TestMultiSourceOrderAndDedup(t *testing.T) {
	a := FromWords([]string{"alpha", "shard"})
	b := FromWords([]string{"shard", "share", "brave"})
	m := NewMultiSource(a, b)

	got, err := m.Lookup("sha??", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := []string{"shard", "share"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v (first source first, no dupes)", got, want)
	}

	m.SetActive(0, false)
	got, _ = m.Lookup("alpha", nil)
	if len(got) != 0 {
		t.Errorf("inactive source still answered: %v", got)
	}
}

func TestMultiSourcePropagatesInvalidPattern(t *testing.T) {
	m := NewMultiSource(FromWords([]string{"word"}))
	_, err := m.Lookup("", nil)
	var bad *InvalidPatternError
	if !errors.As(err, &bad) {
		t.Errorf("err = %v, want InvalidPatternError", err)
	}
}
