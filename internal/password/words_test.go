package password

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNouns(t *testing.T) {
	words := Nouns()
	if len(words) < 100 {
		t.Fatalf("built-in list has %d words, want at least 100", len(words))
	}

	seen := make(map[string]bool)
	for _, w := range words {
		if w != strings.ToLower(strings.TrimSpace(w)) || w == "" {
			t.Errorf("word %q should be trimmed lower case", w)
		}
		if seen[w] {
			t.Errorf("duplicate word %q", w)
		}
		seen[w] = true
	}
}

func TestNounsReturnsCopy(t *testing.T) {
	a := Nouns()
	a[0] = "mutated"
	if Nouns()[0] == "mutated" {
		t.Error("Nouns should return a copy")
	}
}

func TestLoadWords(t *testing.T) {
	in := "apple\n\n  pear  \r\n\t\nplum"
	got, err := LoadWords(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"apple", "pear", "plum"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadWords = %v, want %v", got, want)
	}
}

func TestLoadWordsFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("kite\nlantern\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	words, err := LoadWordsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 {
		t.Errorf("got %d words, want 2", len(words))
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWordsFile(empty); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("empty list: err = %v, want ErrInvalidOptions", err)
	}

	if _, err := LoadWordsFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("missing file should fail")
	}
}
