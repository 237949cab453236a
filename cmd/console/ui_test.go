package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/glass-forest/internal/session"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
	"github.com/jwebster45206/glass-forest/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) ConsoleUI {
	t.Helper()
	world, err := scenario.NewRegistry()
	require.NoError(t, err)
	sess, err := session.New(world, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	m := NewConsoleUI(context.Background(), sess)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(ConsoleUI)
}

func submit(t *testing.T, m ConsoleUI, input string) (ConsoleUI, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(ConsoleUI), cmd
}

func lastEntry(m ConsoleUI) logEntry {
	return m.entries[len(m.entries)-1]
}

func TestNewConsoleUI_ShowsStartLocation(t *testing.T) {
	m := newTestUI(t)

	require.Len(t, m.entries, 1)
	assert.Contains(t, m.entries[0].text, "Welcome, player")
	assert.Equal(t, m.entries[0].text, m.lastMessage)
	assert.True(t, m.ready)
}

func TestUpdate_PlayMovesAndRedescribes(t *testing.T) {
	m := newTestUI(t)

	m, cmd := submit(t, m, "yes")
	assert.Nil(t, cmd)
	assert.Equal(t, "meadow", m.session.GameState().Player.Location)
	assert.Equal(t, entryNarration, lastEntry(m).kind)
	assert.Contains(t, lastEntry(m).text, "meadow")
	assert.Empty(t, m.textarea.Value())

	meta := writeMetadata(m.session.GameState())
	assert.Contains(t, meta, "Meadow")
	assert.Contains(t, meta, "Aggression: 0")
	assert.Contains(t, meta, "Turns: 1")
}

func TestUpdate_EmptyInputIgnored(t *testing.T) {
	m := newTestUI(t)
	before := len(m.entries)

	m, _ = submit(t, m, "   ")
	assert.Len(t, m.entries, before)
	assert.Equal(t, 0, m.session.GameState().TurnCounter)
}

func TestUpdate_QuitEndsGame(t *testing.T) {
	m := newTestUI(t)

	m, _ = submit(t, m, "quit")
	require.True(t, m.ended)
	assert.Equal(t, "Press any key to close.", lastEntry(m).text)
	assert.Equal(t, state.MsgFarewell, m.entries[len(m.entries)-2].text)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_CtrlCOpensQuitModal(t *testing.T) {
	m := newTestUI(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(ConsoleUI)
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit Game?")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(ConsoleUI)
	assert.False(t, m.showQuitModal)
}

func TestSlashCommands(t *testing.T) {
	var copied string
	orig := copyFunc
	t.Cleanup(func() { copyFunc = orig })

	t.Run("copy puts the last text on the clipboard", func(t *testing.T) {
		copyFunc = func(s string) error {
			copied = s
			return nil
		}
		m := newTestUI(t)
		m, _ = submit(t, m, "look")
		m, _ = submit(t, m, "/copy")

		assert.Contains(t, copied, "Welcome, player")
		assert.Equal(t, "Copied to clipboard.", lastEntry(m).text)
		assert.Equal(t, 1, m.session.GameState().TurnCounter, "console commands are not game turns")
	})

	t.Run("copy failure is reported", func(t *testing.T) {
		copyFunc = func(string) error { return errors.New("no clipboard") }
		m := newTestUI(t)
		m, _ = submit(t, m, "/copy")

		assert.Equal(t, entryError, lastEntry(m).kind)
		assert.Contains(t, lastEntry(m).text, "no clipboard")
	})

	t.Run("help", func(t *testing.T) {
		m := newTestUI(t)
		m, _ = submit(t, m, "/HELP")
		assert.Contains(t, lastEntry(m).text, "/copy")
	})

	t.Run("unknown", func(t *testing.T) {
		m := newTestUI(t)
		m, _ = submit(t, m, "/vars")
		assert.Equal(t, entryError, lastEntry(m).kind)
	})
}
