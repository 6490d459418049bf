package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpass/internal/password"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	dir       string
	wordsFile string
	verbose   bool
	copy      bool
}

func (o *rootOptions) runner(cmd *cobra.Command) (*Runner, error) {
	r, err := OpenRunner(o.dir, o.wordsFile, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	r.CopyToClipboard(o.copy)
	return r, nil
}

// NewRootCommand builds the zpass command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "zpass [memorable|random|stress]",
		Short: "Generate memorable or random passwords and log them with a timestamp",
		Long: `zpass generates a password and appends it, with a timestamp, to
Memorable/Generated_Passwords.txt or Random/Generated_Passwords.txt.

Run without arguments to choose a mode interactively.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var choice string
			if len(args) == 1 {
				choice = args[0]
			} else {
				c, err := promptChoice(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				choice = c
			}
			return runChoice(cmd, opts, choice)
		},
	}

	root.PersistentFlags().StringVar(&opts.dir, "dir", ".", "directory holding the Memorable and Random logs")
	root.PersistentFlags().BoolVar(&opts.copy, "copy", false, "also copy the password to the clipboard")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMemorableCommand(opts),
		newRandomCommand(opts),
		newStressCommand(opts),
		newHistoryCommand(opts),
		newVersionCommand(version),
	)

	return root
}

// runChoice dispatches a mode named as a bare argument or picked at the prompt.
func runChoice(cmd *cobra.Command, opts *rootOptions, choice string) error {
	if strings.EqualFold(strings.TrimSpace(choice), choiceStress) {
		r, err := opts.runner(cmd)
		if err != nil {
			return err
		}
		_, err = r.Stress(cmd.Context(), DefaultStressCount)
		return err
	}

	mode, err := password.ParseMode(choice)
	if err != nil {
		return err
	}

	r, err := opts.runner(cmd)
	if err != nil {
		return err
	}
	_, err = r.Generate(mode)
	return err
}

func newMemorableCommand(root *rootOptions) *cobra.Command {
	var (
		words   int
		caseArg string
		noDigit bool
	)

	cmd := &cobra.Command{
		Use:   "memorable",
		Short: "Generate a password from dictionary words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := password.ParseCase(caseArg)
			if err != nil {
				return err
			}

			r, err := root.runner(cmd)
			if err != nil {
				return err
			}

			_, err = r.Memorable(password.MemorableOptions{
				Words:  words,
				Case:   c,
				Digits: !noDigit,
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&words, "words-count", "n", password.DefaultWordCount, "number of words")
	cmd.Flags().StringVar(&caseArg, "case", string(password.CaseLower), "letter case for words: lower, upper, title or mixed")
	cmd.Flags().BoolVar(&noDigit, "no-digit", false, "do not add a digit to each word")
	cmd.Flags().StringVar(&root.wordsFile, "words", "", "word list file, one word per line (default: built-in nouns)")

	return cmd
}

func newRandomCommand(root *rootOptions) *cobra.Command {
	var (
		length    int
		noPunct   bool
		forbidden string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a password from random characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := root.runner(cmd)
			if err != nil {
				return err
			}

			_, err = r.Random(password.RandomOptions{
				Length:      length,
				Punctuation: !noPunct,
				Forbidden:   forbidden,
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", password.DefaultLength, "password length")
	cmd.Flags().BoolVar(&noPunct, "no-punct", false, "do not include punctuation characters")
	cmd.Flags().StringVar(&forbidden, "forbidden", "", `characters to exclude, e.g. "O0Il|"`)

	return cmd
}

func newStressCommand(root *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Generate many passwords, mixing memorable and random",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := root.runner(cmd)
			if err != nil {
				return err
			}
			_, err = r.Stress(cmd.Context(), count)
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", DefaultStressCount, "number of passwords to generate")
	cmd.Flags().StringVar(&root.wordsFile, "words", "", "word list file for memorable passwords")

	return cmd
}

func newHistoryCommand(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [memorable|random]",
		Short: "List previously generated passwords, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := password.Modes()
			if len(args) == 1 {
				m, err := password.ParseMode(args[0])
				if err != nil {
					return err
				}
				modes = []password.Mode{m}
			}

			r, err := root.runner(cmd)
			if err != nil {
				return err
			}
			return r.History(modes, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zpass version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "zpass %s\n", version)
			return nil
		},
	}
}
