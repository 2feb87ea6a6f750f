package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})

	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyUp))
	_, ok := m.Chosen()
	assert.False(t, ok)

	m, _ = m.Update(specialKey(tea.KeyEnter))
	got, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestMultiChoiceNumberKey(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})

	m, _ = m.Update(keyPress('3'))
	got, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, "c", got)

	// Further keys are ignored once submitted.
	m, _ = m.Update(keyPress('1'))
	got, _ = m.Chosen()
	assert.Equal(t, "c", got)
}

func TestMultiChoiceOutOfRangeNumber(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(keyPress('4'))
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { fired = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { fired = "two"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "two", fired)
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		NewButton("Again", false, func() tea.Cmd { pressed = "again"; return nil }),
		NewButton("Home", false, func() tea.Cmd { pressed = "home"; return nil }),
	)
	assert.Equal(t, 0, row.Active())
	assert.True(t, row.Buttons[0].Active)

	row, _ = row.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, row.Active())
	assert.False(t, row.Buttons[0].Active)

	row, _ = row.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 0, row.Active(), "wraps around")

	row, _ = row.Update(specialKey(tea.KeyLeft))
	row.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "home", pressed)
}

func TestProgressBarFraction(t *testing.T) {
	assert.Equal(t, 0.0, NewProgressBar("", 1, 0, 20).Fraction())
	assert.Equal(t, 0.5, NewProgressBar("", 2, 4, 20).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 9, 4, 20).Fraction())
	assert.Contains(t, NewProgressBar("Cards", 2, 4, 30).View(), "2/4")
}
