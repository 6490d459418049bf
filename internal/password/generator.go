package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"
	"unicode"
)

// character classes
const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
	punctChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	wordSeparator = "-"
)

// defaults used when a mode is requested without options
const (
	DefaultWordCount = 4
	DefaultLength    = 16
)

// StressForbidden is excluded from random passwords produced by Mixed.
// The characters are easy to confuse or awkward to type.
const StressForbidden = "O0Il|`'\" "

// Case controls the letter case of memorable words.
type Case string

const (
	CaseLower Case = "lower"
	CaseUpper Case = "upper"
	CaseTitle Case = "title"
	CaseMixed Case = "mixed"
)

// Cases lists every supported Case.
func Cases() []Case {
	return []Case{CaseLower, CaseUpper, CaseTitle, CaseMixed}
}

// ParseCase validates a case name.
func ParseCase(s string) (Case, error) {
	c := Case(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Cases(), c) {
		return c, nil
	}
	return "", fmt.Errorf("%w: case must be lower, upper, title or mixed, got %q", ErrInvalidOptions, s)
}

// MemorableOptions configures Generator.Memorable.
type MemorableOptions struct {
	Words  int
	Case   Case
	Digits bool
}

// DefaultMemorable returns four lower-case words, each followed by a digit.
func DefaultMemorable() MemorableOptions {
	return MemorableOptions{Words: DefaultWordCount, Case: CaseLower, Digits: true}
}

// RandomOptions configures Generator.Random.
type RandomOptions struct {
	Length      int
	Punctuation bool
	Forbidden   string
}

// DefaultRandom returns 16 characters including punctuation.
func DefaultRandom() RandomOptions {
	return RandomOptions{Length: DefaultLength, Punctuation: true}
}

// Generator produces passwords using crypto/rand.
type Generator struct {
	words []string
	now   func() time.Time
}

// New creates a generator drawing memorable words from words.
// A nil or empty list falls back to the built-in noun list.
func New(words []string) *Generator {
	if len(words) == 0 {
		words = Nouns()
	}
	return &Generator{words: words, now: time.Now}
}

// Generate produces a password in the given mode with default options.
func (g *Generator) Generate(mode Mode) (Password, error) {
	switch mode {
	case ModeMemorable:
		return g.Memorable(DefaultMemorable())
	case ModeRandom:
		return g.Random(DefaultRandom())
	}
	return Password{}, fmt.Errorf("generate: %w: %q", ErrInvalidMode, mode)
}

// Memorable joins distinct words from the word list with "-".
func (g *Generator) Memorable(opts MemorableOptions) (Password, error) {
	if opts.Words <= 0 {
		return Password{}, fmt.Errorf("memorable: %w: word count must be >= 1", ErrInvalidOptions)
	}
	if opts.Words > len(g.words) {
		return Password{}, fmt.Errorf("memorable: %w: word count %d exceeds word list size %d",
			ErrInvalidOptions, opts.Words, len(g.words))
	}
	if opts.Case == "" {
		opts.Case = CaseLower
	}
	if _, err := ParseCase(string(opts.Case)); err != nil {
		return Password{}, fmt.Errorf("memorable: %w", err)
	}

	words := sample(g.words, opts.Words)
	for i, w := range words {
		w = applyCase(w, opts.Case)
		if opts.Digits {
			w += string(pickByte(digitChars))
		}
		words[i] = w
	}

	return g.password(ModeMemorable, strings.Join(words, wordSeparator)), nil
}

// Random picks Length characters uniformly from the alphabet described by opts.
func (g *Generator) Random(opts RandomOptions) (Password, error) {
	if opts.Length <= 0 {
		return Password{}, fmt.Errorf("random: %w: length must be >= 1", ErrInvalidOptions)
	}

	alphabet, err := Alphabet(opts)
	if err != nil {
		return Password{}, fmt.Errorf("random: %w", err)
	}

	buf := make([]byte, opts.Length)
	for i := range buf {
		buf[i] = pickByte(alphabet)
	}

	return g.password(ModeRandom, string(buf)), nil
}

// Mixed picks a mode at random and randomises its options.
// Memorable passwords use 3-5 words in any case, random ones use
// 12, 14, 16 or 20 characters with StressForbidden removed.
func (g *Generator) Mixed() (Password, error) {
	if randIntn(2) == 0 {
		return g.Memorable(MemorableOptions{
			Words:  3 + randIntn(3),
			Case:   Cases()[randIntn(len(Cases()))],
			Digits: true,
		})
	}

	lengths := []int{12, 14, 16, 20}
	return g.Random(RandomOptions{
		Length:      lengths[randIntn(len(lengths))],
		Punctuation: randIntn(2) == 0,
		Forbidden:   StressForbidden,
	})
}

// Alphabet returns the sorted, de-duplicated set of characters a random
// password may contain under opts.
func Alphabet(opts RandomOptions) (string, error) {
	chars := lowerChars + upperChars + digitChars
	if opts.Punctuation {
		chars += punctChars
	}

	buf := []byte(chars)
	buf = slices.DeleteFunc(buf, func(b byte) bool {
		return strings.ContainsRune(opts.Forbidden, rune(b))
	})
	if len(buf) == 0 {
		return "", ErrEmptyAlphabet
	}

	slices.Sort(buf)
	return string(slices.Compact(buf)), nil
}

func (g *Generator) password(mode Mode, value string) Password {
	return Password{Mode: mode, Value: value, CreatedAt: g.now()}
}

func applyCase(w string, c Case) string {
	switch c {
	case CaseUpper:
		return strings.ToUpper(w)
	case CaseTitle:
		return titleCase(w)
	case CaseMixed:
		return applyCase(w, Cases()[randIntn(3)])
	}
	return strings.ToLower(w)
}

// titleCase upper-cases the first letter of each letter run and lower-cases
// the rest, so "e-mail" becomes "E-Mail".
func titleCase(w string) string {
	var b strings.Builder
	b.Grow(len(w))

	inWord := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			if inWord {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			inWord = true
		} else {
			inWord = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sample returns k distinct elements of pool in random order.
func sample(pool []string, k int) []string {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}

	// partial Fisher-Yates
	out := make([]string, k)
	for i := range k {
		j := i + randIntn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = pool[idx[i]]
	}
	return out
}

// pickByte returns a random byte from a string.
func pickByte(s string) byte {
	return s[randIntn(len(s))]
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
