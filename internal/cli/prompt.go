package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zarlcorp/zpass/internal/tui"
	"golang.org/x/term"
)

const choiceStress = "stress"

// promptChoices are offered when zpass runs without arguments.
var promptChoices = []string{"memorable", "random", choiceStress}

// stdinIsTerminal reports whether the interactive prompt can take over the
// terminal. Tests replace it.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadChoice asks for a mode on w and reads answers line by line from r
// until one is valid. Empty input selects the default.
func ReadChoice(r io.Reader, w io.Writer) (string, error) {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "Choose mode [memorable/random/stress] (default: memorable): ")
		if !sc.Scan() {
			fmt.Fprintln(w)
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read choice: %w", err)
			}
			return "", fmt.Errorf("read choice: %w", io.ErrUnexpectedEOF)
		}

		choice, err := tui.ParseChoice(sc.Text(), promptChoices, promptChoices[0])
		if err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		return choice, nil
	}
}

// promptChoice uses the full-screen prompt on a terminal and falls back to
// line input otherwise.
func promptChoice(ctx context.Context, in io.Reader, errOut io.Writer) (string, error) {
	if stdinIsTerminal() {
		return tui.Prompt(ctx, errOut, promptChoices, promptChoices[0])
	}
	return ReadChoice(in, errOut)
}
