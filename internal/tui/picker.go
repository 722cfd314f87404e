// Package tui is the interactive picker: a query line on top, the ranked
// characters below. Every edit of the query is one query change for the mode.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/internal/cli"
	"github.com/bastiangx/unipick/pkg/mode"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Complete key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:     key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Select:   key.NewBinding(key.WithKeys("enter")),
	Complete: key.NewBinding(key.WithKeys("tab")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model of the picker.
type Model struct {
	mode   *mode.Mode
	input  textinput.Model
	cursor int
	width  int
	height int

	chosen string
	copy   bool
	copyFn func(string) error
	status string
}

// New creates a picker over an active mode and shows the browse list.
func New(m *mode.Mode, copyOnPick bool) *Model {
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "name, alias or codepoint..."
	ti.CharLimit = 128
	ti.Focus()

	p := &Model{
		mode:   m,
		input:  ti,
		height: 20,
		copy:   copyOnPick,
		copyFn: clipboard.WriteAll,
	}
	m.OnQueryChanged("")
	return p
}

// Chosen returns the emitted text, empty when the picker was cancelled.
func (p *Model) Chosen() string {
	return p.chosen
}

func (p *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (p *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.input.Width = max(msg.Width-4, 10)
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.mode.Results())-1 {
				p.cursor++
			}
			return p, nil
		case key.Matches(msg, keys.Complete):
			if name, ok := p.mode.OnComplete(p.cursor); ok {
				p.input.SetValue(name)
				p.input.CursorEnd()
				p.query()
			}
			return p, nil
		case key.Matches(msg, keys.Select):
			return p, p.pick()
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.query()
	}
	return p, cmd
}

func (p *Model) query() {
	p.mode.OnQueryChanged(p.input.Value())
	p.cursor = 0
	p.status = ""
}

func (p *Model) pick() tea.Cmd {
	out := p.mode.OnEntrySelected(p.cursor)
	if out.Action != mode.ActionSelect {
		p.status = "nothing to pick"
		return nil
	}
	p.chosen = p.mode.OnActivate(out.Entry)
	if p.copy {
		if err := p.copyFn(p.chosen); err != nil {
			log.Warnf("Copying to clipboard: %v", err)
		}
	}
	return tea.Quit
}

// rows is the number of result lines that fit under the input and footer.
func (p *Model) rows() int {
	return max(p.height-3, 1)
}

func (p *Model) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteByte('\n')

	results := p.mode.Results()
	first := 0
	if p.cursor >= p.rows() {
		first = p.cursor - p.rows() + 1
	}
	for i := first; i < len(results) && i < first+p.rows(); i++ {
		b.WriteString(cli.RenderRow(i+1, results[i], p.width, i == p.cursor))
		b.WriteByte('\n')
	}

	switch {
	case p.status != "":
		b.WriteString(errorStyle.Render(p.status))
	case p.mode.Message() != "":
		b.WriteString(cli.MessageStyle.Render(p.mode.Message()))
	default:
		b.WriteString(footerStyle.Render(fmt.Sprintf("%d shown · enter picks · tab completes · esc quits", len(results))))
	}
	return b.String()
}

// Run activates m, shows the picker on stderr and writes the picked
// character to out.
func Run(m *mode.Mode, copyOnPick bool, out io.Writer) error {
	if err := m.Activate(); err != nil {
		return err
	}
	defer m.Deactivate()

	picker := New(m, copyOnPick)
	prog := tea.NewProgram(picker, tea.WithOutput(os.Stderr))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	if picker.Chosen() != "" {
		_, err := fmt.Fprintln(out, picker.Chosen())
		return err
	}
	return nil
}
