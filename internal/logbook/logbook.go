// Package logbook records generated passwords in per-mode text files.
// Each mode owns one append-only file of "<timestamp>  |  <password>" lines.
package logbook

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zpass/internal/password"
)

const (
	// FileName is the log file inside each mode directory.
	FileName = "Generated_Passwords.txt"

	// TimeLayout formats entry timestamps, e.g. "Mon Oct 19 2026 14:03:59".
	TimeLayout = "Mon Jan 02 2006 15:04:05"

	separator = "  |  "
)

// ErrMalformedLine is returned when a log line cannot be parsed.
var ErrMalformedLine = errors.New("malformed log line")

// Entry is one parsed log line.
type Entry struct {
	Mode     password.Mode `json:"mode"`
	Time     time.Time     `json:"time"`
	Password string        `json:"password"`
}

// Logger appends passwords to mode files on a filesystem.
type Logger struct {
	fs zfilesystem.ReadWriteFileFS
}

// New creates a logger rooted at fsys.
func New(fsys zfilesystem.ReadWriteFileFS) *Logger {
	return &Logger{fs: fsys}
}

// Dir returns the directory holding the log for mode.
func Dir(mode password.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", password.ErrInvalidMode, mode)
	}

	switch mode {
	case password.ModeMemorable:
		return "Memorable", nil
	default:
		return "Random", nil
	}
}

// Path returns the log file path for mode, relative to the logger root.
func Path(mode password.Mode) (string, error) {
	dir, err := Dir(mode)
	if err != nil {
		return "", err
	}
	return dir + "/" + FileName, nil
}

// FormatLine renders p as a log line without the trailing newline.
func FormatLine(p password.Password) string {
	return p.CreatedAt.Format(TimeLayout) + separator + p.Value
}

// ParseLine parses a line written by FormatLine. The timestamp is read in
// local time, matching how it was written.
func ParseLine(mode password.Mode, line string) (Entry, error) {
	ts, pw, ok := strings.Cut(line, separator)
	if !ok || pw == "" {
		return Entry{}, fmt.Errorf("%w: missing separator", ErrMalformedLine)
	}

	t, err := time.ParseInLocation(TimeLayout, ts, time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedLine, err)
	}

	return Entry{Mode: mode, Time: t, Password: pw}, nil
}

// Append adds one line for p to its mode's file, creating the directory and
// file if needed. The file is opened in append mode so earlier lines are
// never rewritten.
func (l *Logger) Append(p password.Password) (err error) {
	dir, err := Dir(p.Mode)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}
	path := dir + "/" + FileName

	if err := l.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("append: create %s: %w", dir, err)
	}

	f, err := l.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("append: open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("append: close %s: %w", path, cerr)
		}
	}()

	w, ok := any(f).(io.Writer)
	if !ok {
		return fmt.Errorf("append: %s is not writable", path)
	}

	line := FormatLine(p) + "\n"
	// a hand-edited file may have lost its final newline
	if missingNewline(f) {
		line = "\n" + line
	}

	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("append: write %s: %w", path, err)
	}

	return nil
}

// missingNewline reports whether f is non-empty and does not end in '\n'.
// Only the last byte is read.
func missingNewline(f any) bool {
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		return false
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil || size == 0 {
		return false
	}
	if _, err := rs.Seek(size-1, io.SeekStart); err != nil {
		return false
	}

	last := make([]byte, 1)
	if _, err := io.ReadFull(rs, last); err != nil {
		return false
	}
	return last[0] != '\n'
}

// Entries returns every entry in mode's file, oldest first.
// A file that does not exist yet has no entries.
func (l *Logger) Entries(mode password.Mode) ([]Entry, error) {
	path, err := Path(mode)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	data, err := l.read(path)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		e, err := ParseLine(mode, line)
		if err != nil {
			return nil, fmt.Errorf("entries: %s line %d: %w", path, i+1, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Count returns the number of entries in mode's file.
func (l *Logger) Count(mode password.Mode) (int, error) {
	entries, err := l.Entries(mode)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (l *Logger) read(path string) ([]byte, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
