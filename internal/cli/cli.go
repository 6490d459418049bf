// Package cli implements zpass's command-line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zpass/internal/logbook"
	"github.com/zarlcorp/zpass/internal/password"
)

// DefaultStressCount is how many passwords stress mode generates.
const DefaultStressCount = 1000

// Runner generates passwords, records them and prints them.
type Runner struct {
	gen  *password.Generator
	log  *logbook.Logger
	out  io.Writer
	copy bool
}

// NewRunner creates a runner writing passwords to out.
func NewRunner(gen *password.Generator, log *logbook.Logger, out io.Writer) *Runner {
	return &Runner{gen: gen, log: log, out: out}
}

// OpenRunner prepares a runner whose logs live under dir. A non-empty
// wordsFile replaces the built-in word list.
func OpenRunner(dir, wordsFile string, out io.Writer) (*Runner, error) {
	var words []string
	if wordsFile != "" {
		w, err := password.LoadWordsFile(wordsFile)
		if err != nil {
			return nil, err
		}
		words = w
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	return NewRunner(password.New(words), logbook.New(fsys), out), nil
}

// CopyToClipboard makes the runner also copy each printed password to the
// system clipboard. Clipboard failures are logged, not returned.
func (r *Runner) CopyToClipboard(on bool) {
	r.copy = on
}

// Memorable generates, records and prints a memorable password.
func (r *Runner) Memorable(opts password.MemorableOptions) (password.Password, error) {
	p, err := r.gen.Memorable(opts)
	if err != nil {
		return password.Password{}, err
	}
	return p, r.emit(p)
}

// Random generates, records and prints a random password.
func (r *Runner) Random(opts password.RandomOptions) (password.Password, error) {
	p, err := r.gen.Random(opts)
	if err != nil {
		return password.Password{}, err
	}
	return p, r.emit(p)
}

// Generate runs mode with its default options.
func (r *Runner) Generate(mode password.Mode) (password.Password, error) {
	switch mode {
	case password.ModeMemorable:
		return r.Memorable(password.DefaultMemorable())
	case password.ModeRandom:
		return r.Random(password.DefaultRandom())
	}
	return password.Password{}, fmt.Errorf("%w: %q", password.ErrInvalidMode, mode)
}

// StressResult counts the passwords a stress run produced per mode.
type StressResult struct {
	Memorable int `json:"memorable"`
	Random    int `json:"random"`
}

// Total returns the number of passwords generated.
func (s StressResult) Total() int {
	return s.Memorable + s.Random
}

// Stress generates n mixed passwords, recording each but printing only a
// summary. It stops early if ctx is cancelled.
func (r *Runner) Stress(ctx context.Context, n int) (StressResult, error) {
	var res StressResult
	if n <= 0 {
		return res, fmt.Errorf("stress: %w: count must be >= 1", password.ErrInvalidOptions)
	}

	for range n {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("stress: stopped after %d: %w", res.Total(), err)
		}

		p, err := r.gen.Mixed()
		if err != nil {
			return res, fmt.Errorf("stress: %w", err)
		}
		if err := r.record(p); err != nil {
			return res, fmt.Errorf("stress: %w", err)
		}

		if p.Mode == password.ModeMemorable {
			res.Memorable++
		} else {
			res.Random++
		}
	}

	fmt.Fprintf(r.out, "generated %d mixed passwords (%d memorable, %d random)\n",
		res.Total(), res.Memorable, res.Random)
	return res, nil
}

// History prints recorded entries for the given modes, newest first.
func (r *Runner) History(modes []password.Mode, asJSON bool) error {
	all := make([]logbook.Entry, 0)
	for _, m := range modes {
		entries, err := r.log.Entries(m)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		all = append(all, entries...)
	}

	// timestamps only have second precision; reversing first keeps lines
	// written within the same second newest first after the stable sort
	slices.Reverse(all)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time.After(all[j].Time)
	})

	if asJSON {
		return printJSON(r.out, all)
	}

	if len(all) == 0 {
		fmt.Fprintln(r.out, "no generated passwords")
		return nil
	}

	for _, e := range all {
		fmt.Fprintf(r.out, "  %-10s %-25s %s\n", e.Mode, e.Time.Format(logbook.TimeLayout), e.Password)
	}
	return nil
}

// emit records p and prints its value.
func (r *Runner) emit(p password.Password) error {
	if err := r.record(p); err != nil {
		return err
	}
	fmt.Fprintln(r.out, p.Value)

	if r.copy {
		if err := clipboardWrite(p.Value); err != nil {
			slog.Warn("copy to clipboard", "err", err)
		}
	}
	return nil
}

func (r *Runner) record(p password.Password) error {
	if err := r.log.Append(p); err != nil {
		return fmt.Errorf("record %s password: %w", p.Mode, err)
	}
	path, _ := logbook.Path(p.Mode)
	slog.Debug("password recorded", "mode", p.Mode, "path", path)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
