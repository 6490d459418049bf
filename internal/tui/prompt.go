// Package tui implements zpass's interactive mode prompt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

var (
	// ErrCancelled is returned when the user leaves the prompt without choosing.
	ErrCancelled = errors.New("prompt cancelled")

	// ErrInvalidChoice is returned for input that names no choice.
	ErrInvalidChoice = errors.New("invalid choice")
)

// ParseChoice matches input against choices ignoring case and surrounding
// space. Empty input selects def.
func ParseChoice(input string, choices []string, def string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return def, nil
	}
	if slices.Contains(choices, s) {
		return s, nil
	}
	return "", fmt.Errorf("%w %q: choose one of %s", ErrInvalidChoice, input, strings.Join(choices, ", "))
}

// promptModel asks for one of a fixed set of choices and re-prompts until
// the input is valid.
type promptModel struct {
	input     textinput.Model
	choices   []string
	def       string
	tabIndex  int
	errMsg    string
	chosen    string
	cancelled bool
}

func newPromptModel(choices []string, def string) promptModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 20

	return promptModel{
		input:    ti,
		choices:  choices,
		def:      def,
		tabIndex: -1,
	}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, zstyle.KeyEnter):
			return m.handleSubmit()

		case key.Matches(msg, zstyle.KeyTab):
			// cycle through the choices
			m.tabIndex = (m.tabIndex + 1) % len(m.choices)
			m.input.SetValue(m.choices[m.tabIndex])
			m.input.CursorEnd()
			m.errMsg = ""
			return m, nil
		}

		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) handleSubmit() (promptModel, tea.Cmd) {
	choice, err := ParseChoice(m.input.Value(), m.choices, m.def)
	if err != nil {
		m.errMsg = err.Error()
		m.input.SetValue("")
		m.tabIndex = -1
		return m, nil
	}

	m.chosen = choice
	m.errMsg = ""
	return m, tea.Quit
}

func (m promptModel) View() string {
	if m.chosen != "" || m.cancelled {
		return ""
	}

	indent := lipgloss.NewStyle().MarginLeft(2)
	title := indent.Render(zstyle.Title.Render("zpass"))
	prompt := fmt.Sprintf("choose mode [%s] (default: %s):", strings.Join(m.choices, "/"), m.def)

	s := fmt.Sprintf("\n%s\n\n  %s\n  %s\n", title, prompt, m.input.View())

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	}

	s += "\n  " + zstyle.MutedText.Render("tab cycle  enter select  esc cancel") + "\n"
	return s
}

// Prompt runs the interactive prompt on the terminal and returns the chosen
// value. The UI is drawn on out so stdout stays free for passwords.
func Prompt(ctx context.Context, out io.Writer, choices []string, def string) (string, error) {
	p := tea.NewProgram(newPromptModel(choices, def),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok || m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}
	return m.chosen, nil
}
