package password

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed nouns.txt
var nounsText string

var nouns = sync.OnceValue(func() []string {
	words, err := LoadWords(strings.NewReader(nounsText))
	if err != nil {
		panic("password: built-in noun list: " + err.Error())
	}
	return words
})

// Nouns returns a copy of the built-in English noun list.
func Nouns() []string {
	n := nouns()
	out := make([]string, len(n))
	copy(out, n)
	return out
}

// LoadWords reads one word per line, trimming space and skipping blank lines.
func LoadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return words, nil
}

// LoadWordsFile reads a word list from path.
func LoadWordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := LoadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w: word list is empty", path, ErrInvalidOptions)
	}
	return words, nil
}
