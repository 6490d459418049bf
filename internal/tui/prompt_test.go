package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var testChoices = []string{"memorable", "random", "stress"}

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m promptModel, s string) promptModel {
	for _, r := range s {
		next, _ := m.Update(keyMsg(r))
		m = next.(promptModel)
	}
	return m
}

func press(m promptModel, t tea.KeyType) (promptModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: t})
	return next.(promptModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "memorable", false},
		{"   ", "memorable", false},
		{"random", "random", false},
		{"STRESS", "stress", false},
		{" Memorable\n", "memorable", false},
		{"rand", "", true},
		{"banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChoice(tt.in, testChoices, "memorable")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChoice) {
					t.Fatalf("err = %v, want ErrInvalidChoice", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptViewShowsChoices(t *testing.T) {
	m := newPromptModel(testChoices, "memorable")
	view := m.View()

	if !strings.Contains(view, "memorable/random/stress") {
		t.Error("view should list the choices")
	}
	if !strings.Contains(view, "default: memorable") {
		t.Error("view should show the default")
	}
}

func TestPromptValidChoiceQuits(t *testing.T) {
	m := typeText(newPromptModel(testChoices, "memorable"), "random")

	m, cmd := press(m, tea.KeyEnter)
	if !isQuit(cmd) {
		t.Fatal("valid choice should quit the program")
	}
	if m.chosen != "random" {
		t.Errorf("chosen = %q, want %q", m.chosen, "random")
	}
}

func TestPromptEmptyUsesDefault(t *testing.T) {
	m, cmd := press(newPromptModel(testChoices, "memorable"), tea.KeyEnter)
	if !isQuit(cmd) {
		t.Fatal("empty input should accept the default")
	}
	if m.chosen != "memorable" {
		t.Errorf("chosen = %q, want memorable", m.chosen)
	}
}

func TestPromptInvalidChoiceReprompts(t *testing.T) {
	m := typeText(newPromptModel(testChoices, "memorable"), "banana")

	m, cmd := press(m, tea.KeyEnter)
	if isQuit(cmd) {
		t.Fatal("invalid choice should not quit")
	}
	if m.chosen != "" {
		t.Errorf("chosen = %q, want empty", m.chosen)
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after an invalid choice")
	}
	if !strings.Contains(m.View(), "invalid choice") {
		t.Error("view should show the error")
	}

	// second attempt succeeds
	m = typeText(m, "stress")
	m, cmd = press(m, tea.KeyEnter)
	if !isQuit(cmd) || m.chosen != "stress" {
		t.Errorf("retry: chosen = %q, quit = %v", m.chosen, isQuit(cmd))
	}
}

func TestPromptErrorClearsOnKeyPress(t *testing.T) {
	m := newPromptModel(testChoices, "memorable")
	m.errMsg = "some error"

	m = typeText(m, "r")
	if m.errMsg != "" {
		t.Error("error should be cleared on key press")
	}
}

func TestPromptTabCyclesChoices(t *testing.T) {
	m := newPromptModel(testChoices, "memorable")

	for _, want := range []string{"memorable", "random", "stress", "memorable"} {
		m, _ = press(m, tea.KeyTab)
		if m.input.Value() != want {
			t.Errorf("after tab: input = %q, want %q", m.input.Value(), want)
		}
	}
}

func TestPromptCancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, cmd := press(newPromptModel(testChoices, "memorable"), k)
		if !isQuit(cmd) {
			t.Errorf("%v should quit", k)
		}
		if !m.cancelled {
			t.Errorf("%v should mark the prompt cancelled", k)
		}
	}
}

func TestPromptQKeyReachesInput(t *testing.T) {
	m := typeText(newPromptModel(testChoices, "memorable"), "q")
	if m.input.Value() != "q" {
		t.Fatalf("expected input to contain %q, got %q", "q", m.input.Value())
	}
}
