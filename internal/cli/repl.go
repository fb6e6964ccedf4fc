package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// replHistory is how many past entries the REPL shows.
const replHistory = 12

var (
	replPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	replInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	replDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// replCommand creates the repl command, an interactive parse and convert loop.
func (c *CLI) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse, convert and combine quantities interactively",
		Long: `Start an interactive session. Each line is one of:

  <quantity>               parse, e.g. 5'6"
  <quantity> to <unit>     convert, e.g. 5 sq ft to m
  <a> <op> <b>             calculate, e.g. 3 m x 2 m

Up and down recall earlier lines, esc or ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m := newReplModel(func(line string) (string, error) {
				return c.evaluate(ctx, line)
			})
			_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// evaluate runs one REPL line and returns the rendered result.
func (c *CLI) evaluate(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)

	if i := strings.LastIndex(line, " to "); i > 0 {
		u, err := c.parse(ctx, line[:i])
		if err != nil {
			return "", err
		}
		v, err := c.convert(u, strings.TrimSpace(line[i+len(" to "):]), 0)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}

	if fields := strings.Fields(line); len(fields) >= 3 {
		if left, op, right, err := splitExpression(fields); err == nil {
			a, err := c.parse(ctx, left)
			if err != nil {
				return "", err
			}
			b, err := c.parse(ctx, right)
			if err != nil {
				return "", err
			}
			res, err := operators[op](a, b)
			if err != nil {
				return "", err
			}
			return res.String(), nil
		}
	}

	u, err := c.parse(ctx, line)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s  (%s, %s, power %d)", u, u.Def().Name(), u.Kind(), u.Power()), nil
}

type replEntry struct {
	input  string
	output string
	failed bool
}

// replModel is the bubbletea model of the REPL.
type replModel struct {
	eval    func(string) (string, error)
	input   []rune
	entries []replEntry
	recall  int // index into entries while browsing with up/down
}

func newReplModel(eval func(string) (string, error)) replModel {
	return replModel{eval: eval, recall: -1}
}

func (m replModel) Init() tea.Cmd {
	return nil
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(string(m.input))
		if line == "" {
			return m, nil
		}
		if line == "quit" || line == "exit" {
			return m, tea.Quit
		}
		out, err := m.eval(line)
		entry := replEntry{input: line, output: out}
		if err != nil {
			entry.output, entry.failed = err.Error(), true
		}
		m.entries = append(m.entries, entry)
		m.input = nil
		m.recall = -1
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyUp:
		if len(m.entries) == 0 {
			break
		}
		if m.recall < 0 {
			m.recall = len(m.entries)
		}
		if m.recall > 0 {
			m.recall--
		}
		m.input = []rune(m.entries[m.recall].input)
	case tea.KeyDown:
		if m.recall < 0 {
			break
		}
		m.recall++
		if m.recall >= len(m.entries) {
			m.recall, m.input = -1, nil
			break
		}
		m.input = []rune(m.entries[m.recall].input)
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m replModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName + " repl"))
	b.WriteString("\n")
	b.WriteString(replDimStyle.Render("⏎ evaluate  ↑/↓ history  esc quit"))
	b.WriteString("\n\n")

	start := max(0, len(m.entries)-replHistory)
	for _, e := range m.entries[start:] {
		b.WriteString(replDimStyle.Render(iconInfo + " " + e.input))
		b.WriteString("\n  ")
		if e.failed {
			b.WriteString(StyleError.Render(iconError + " " + e.output))
		} else {
			b.WriteString(StyleNumber.Render(iconArrow + " " + e.output))
		}
		b.WriteString("\n")
	}

	b.WriteString(replPromptStyle.Render(iconInfo + " "))
	b.WriteString(replInputStyle.Render(string(m.input)))
	b.WriteString(replDimStyle.Render("█"))
	b.WriteString("\n")
	return b.String()
}
