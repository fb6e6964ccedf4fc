package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/measure/pkg/errors"
)

func TestEvaluate(t *testing.T) {
	c := newTestCLI()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := withLogger(context.Background(), c.Logger)
	if err := c.setup(ctx); err != nil {
		t.Fatalf("setup() error = %v", err)
	}

	tests := []struct {
		line string
		want string
	}{
		{"5 sq cm", "5 cm²  (centimeter, Length, power 2)"},
		{`5'6"`, "5.5 '  (foot, Length, power 1)"},
		{"150 cm to m", "1.5 m"},
		{"3 m x 2 m", "6 m²"},
		{"5 m 20 cm", "5.2 m  (meter, Length, power 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := c.evaluate(ctx, tt.line)
			if err != nil {
				t.Fatalf("evaluate(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}

	if _, err := c.evaluate(ctx, "3 m + 2 kg"); !errors.Is(err, errors.ErrCodeDifferentKind) {
		t.Errorf("evaluate(3 m + 2 kg) error = %v, want %v", err, errors.ErrCodeDifferentKind)
	}
}

func typeLine(m tea.Model, line string) tea.Model {
	for _, r := range line {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestReplModel(t *testing.T) {
	var seen []string
	var m tea.Model = newReplModel(func(line string) (string, error) {
		seen = append(seen, line)
		if line == "bad" {
			return "", errors.New(errors.ErrCodeNoNumberFound, "no number")
		}
		return "ok:" + line, nil
	})

	m = typeLine(m, "5 m")
	m = typeLine(m, "bad")

	rm := m.(replModel)
	if len(rm.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(rm.entries))
	}
	if rm.entries[0].output != "ok:5 m" || rm.entries[0].failed {
		t.Errorf("entries[0] = %+v", rm.entries[0])
	}
	if !rm.entries[1].failed {
		t.Errorf("entries[1] = %+v, want failed", rm.entries[1])
	}

	view := m.View()
	for _, want := range []string{"5 m", "ok:5 m", "no number"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestReplModelHistory(t *testing.T) {
	var m tea.Model = newReplModel(func(line string) (string, error) { return line, nil })
	m = typeLine(m, "1 m")
	m = typeLine(m, "2 m")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := string(m.(replModel).input); got != "2 m" {
		t.Errorf("after up input = %q, want %q", got, "2 m")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := string(m.(replModel).input); got != "1 m" {
		t.Errorf("after up x3 input = %q, want %q", got, "1 m")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := string(m.(replModel).input); got != "" {
		t.Errorf("after down past the end input = %q, want empty", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := string(m.(replModel).input); got != "a" {
		t.Errorf("after backspace input = %q, want %q", got, "a")
	}
}

func TestReplModelQuit(t *testing.T) {
	m := newReplModel(func(string) (string, error) { return "", nil })

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("Update(%v) cmd = nil, want quit", msg)
		}
	}

	mm := typeLine(m, "quit")
	if len(mm.(replModel).entries) != 0 {
		t.Error("quit was evaluated")
	}
}
