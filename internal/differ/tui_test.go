// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tokctl/internal/store"
)

func press(t *testing.T, m picker, msgs ...tea.KeyMsg) (picker, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(picker)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func pickerItems() []store.TokenVersion {
	return []store.TokenVersion{
		{ID: "version-3-0", Name: "three", Timestamp: 3},
		{ID: "version-2-0", Name: "two", Timestamp: 2},
		{ID: "version-1-0", Name: "one", Timestamp: 1},
	}
}

func TestPickerSelectsTwo(t *testing.T) {
	t.Parallel()
	m := newPicker(pickerItems())

	m, cmd := press(t, m, keySpace, keyEnter)
	assert.Nil(t, cmd, "enter with one selection must not quit")

	m, _ = press(t, m, keyDown, keyDown, keySpace, keyDown, keySpace)
	require.Len(t, m.selected, 2, "third selection is ignored")
	assert.Equal(t, "version-3-0", m.selected[0].ID)
	assert.Equal(t, "version-1-0", m.selected[1].ID)
	assert.Equal(t, 2, m.cursor, "cursor stops at the last item")

	_, cmd = press(t, m, keyEnter)
	assert.NotNil(t, cmd)
}

func TestPickerToggleOff(t *testing.T) {
	t.Parallel()
	m, _ := press(t, newPicker(pickerItems()), keySpace, keyDown, keySpace, keyUp, keySpace)
	require.Len(t, m.selected, 1)
	assert.Equal(t, "version-2-0", m.selected[0].ID)
	assert.Equal(t, 0, m.cursor)
}

func TestPickerQuitClearsSelection(t *testing.T) {
	t.Parallel()
	m, cmd := press(t, newPicker(pickerItems()), keySpace, keyEsc)
	assert.Nil(t, m.selected)
	assert.NotNil(t, cmd)
}

func TestPickerView(t *testing.T) {
	t.Parallel()
	m, _ := press(t, newPicker(pickerItems()), keySpace)
	v := m.View()
	assert.Contains(t, v, "Select two versions")
	assert.Contains(t, v, "version-2-0")
	assert.Contains(t, v, "[x]")
}

func TestPickerEmpty(t *testing.T) {
	t.Parallel()
	m, cmd := press(t, newPicker(nil), keySpace, keyDown, keyEnter)
	assert.Empty(t, m.selected)
	assert.Nil(t, cmd)
}

func TestPickerProgram(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tm := teatest.NewTestModel(t, newPicker(pickerItems()),
		teatest.WithInitialTermSize(100, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("version-1-0"))
	})

	tm.Send(keySpace)
	tm.Send(keyDown)
	tm.Send(keyDown)
	tm.Send(keySpace)
	tm.Send(keyEnter)

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(picker)
	require.True(t, ok)
	require.Len(t, final.selected, 2)
	assert.Equal(t, "version-3-0", final.selected[0].ID)
	assert.Equal(t, "version-1-0", final.selected[1].ID)
}

func TestPickerProgramQuit(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tm := teatest.NewTestModel(t, newPicker(pickerItems()),
		teatest.WithInitialTermSize(100, 24),
	)

	tm.Send(keySpace)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(picker)
	require.True(t, ok)
	assert.Nil(t, final.selected)
}
