package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/pkg/source"
	"typeahead/pkg/typeahead"
)

func newTestModel(t *testing.T, values ...string) Model {
	t.Helper()
	w, err := typeahead.New(typeahead.DefaultConfig(source.Strings(values...)))
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return New(w, time.Millisecond)
}

func typeRune(m Model, r rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func TestTypingQueuesDebouncedSearch(t *testing.T) {
	m := newTestModel(t, "apple", "banana")

	m, cmd := typeRune(m, 'a')
	require.NotNil(t, cmd, "a keystroke must queue a debounce command")
	assert.Equal(t, uint64(1), m.ticket)

	m, _ = typeRune(m, 'p')
	assert.Equal(t, uint64(2), m.ticket, "each keystroke bumps the ticket")
}

func TestStaleTicketDropped(t *testing.T) {
	m := newTestModel(t, "apple")
	m.ticket = 5

	next, cmd := m.Update(searchQueuedMsg{Query: "ap", Ticket: 4})
	m = next.(Model)
	assert.Nil(t, cmd, "an overtaken debounce must not start a search")
	assert.False(t, m.widget.ListOpen())
}

func TestCurrentTicketRunsSearch(t *testing.T) {
	m := newTestModel(t, "apple", "banana")
	m.ticket = 3

	next, cmd := m.Update(searchQueuedMsg{Query: "ap", Ticket: 3})
	m = next.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(searchDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.True(t, m.widget.ListOpen())
}

func TestEnterSelectsAtCursor(t *testing.T) {
	m := newTestModel(t, "apple", "apricot")

	next, cmd := m.Update(searchQueuedMsg{Query: "ap", Ticket: 0})
	m = next.(Model)
	cmd()

	m.widget.MoveNext()
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, "apricot", m.chosen)
	assert.Equal(t, "apricot", m.input.Value())
	assert.False(t, m.widget.ListOpen())
}

func TestEscDismissesListBeforeQuitting(t *testing.T) {
	m := newTestModel(t, "apple")

	next, cmd := m.Update(searchQueuedMsg{Query: "ap", Ticket: 0})
	m = next.(Model)
	cmd()
	require.True(t, m.widget.ListOpen())

	next, quit := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Nil(t, quit)
	assert.False(t, m.widget.ListOpen())
	assert.False(t, m.quitting)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.True(t, m.quitting)
}
