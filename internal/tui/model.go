// Package tui provides the interactive terminal frontend: a text input
// wired to a typeahead widget, with debounced searches and arrow-key
// navigation over the results list.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typeahead/pkg/typeahead"
)

const defaultDebounceInterval = 120 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("105"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	chosenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

// searchQueuedMsg fires when the debounce interval for a keystroke
// elapses. Stale tickets are dropped so only the latest input searches.
type searchQueuedMsg struct {
	Query  string
	Ticket uint64
}

// searchDoneMsg carries a finished search back into the update loop.
type searchDoneMsg struct {
	Err error
}

// Model is the bubbletea model for the interactive prompt.
type Model struct {
	input    textinput.Model
	widget   *typeahead.Widget
	interval time.Duration

	ticket   uint64
	chosen   string
	errText  string
	quitting bool
}

// New builds the prompt model around an existing widget. The widget's
// own debounce should be zero; the update loop owns keystroke pacing so
// searches stay off the UI goroutine.
func New(widget *typeahead.Widget, debounce time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "start typing..."
	ti.Prompt = "> "
	ti.Focus()

	if debounce <= 0 {
		debounce = defaultDebounceInterval
	}
	return Model{
		input:    ti,
		widget:   widget,
		interval: debounce,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.widget.Init()
	return textinput.Blink
}

func (m Model) debounceCmd(query string, ticket uint64) tea.Cmd {
	interval := m.interval
	return func() tea.Msg {
		time.Sleep(interval)
		return searchQueuedMsg{Query: query, Ticket: ticket}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	widget := m.widget
	return func() tea.Msg {
		_, err := widget.Start(context.Background(), query)
		return searchDoneMsg{Err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			m.widget.Close()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.widget.ListOpen() {
				m.widget.CloseList()
				return m, nil
			}
			m.quitting = true
			m.widget.Close()
			return m, tea.Quit
		case tea.KeyUp:
			m.widget.MovePrev()
			return m, nil
		case tea.KeyDown:
			m.widget.MoveNext()
			return m, nil
		case tea.KeyEnter:
			if sel, ok := m.widget.Select(-1); ok {
				m.chosen = sel.Match.Value
				m.input.SetValue(sel.Match.Value)
				m.input.CursorEnd()
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != before {
			m.chosen = ""
			m.errText = ""
			m.ticket++
			return m, tea.Batch(cmd, m.debounceCmd(value, m.ticket))
		}
		return m, cmd

	case searchQueuedMsg:
		if msg.Ticket != m.ticket {
			return m, nil
		}
		return m, m.searchCmd(msg.Query)

	case searchDoneMsg:
		if msg.Err != nil &&
			!errors.Is(msg.Err, typeahead.ErrSuperseded) &&
			!errors.Is(msg.Err, typeahead.ErrClosed) {
			m.errText = msg.Err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("typeahead"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if list := m.widget.View(); list != "" {
		b.WriteString(list)
	}
	if m.errText != "" {
		b.WriteString(statusStyle.Render("error: " + m.errText))
		b.WriteString("\n")
	}
	if m.chosen != "" {
		b.WriteString(chosenStyle.Render("selected: " + m.chosen))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("↑/↓ navigate · enter select · esc dismiss · ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}
