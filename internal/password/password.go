// Package password generates memorable and random passwords.
// All generation uses crypto/rand. Nothing here touches the filesystem.
package password

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects how a password is built.
type Mode string

const (
	ModeMemorable Mode = "memorable"
	ModeRandom    Mode = "random"
)

var (
	// ErrInvalidMode is returned when a mode string is not recognised.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidOptions is returned when generation options are out of range.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrEmptyAlphabet is returned when every candidate character was excluded.
	ErrEmptyAlphabet = errors.New("no characters available to generate password")
)

// Modes lists every password mode.
func Modes() []Mode {
	return []Mode{ModeMemorable, ModeRandom}
}

// ParseMode maps user input to a Mode, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeMemorable, ModeRandom:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeMemorable || m == ModeRandom
}

func (m Mode) String() string {
	return string(m)
}

// Password is a single generated value.
type Password struct {
	Mode      Mode      `json:"mode"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
