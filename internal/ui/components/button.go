package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress when the button is active and Enter is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal group of buttons with one active at a time.
type ButtonRow struct {
	Buttons []Button
	active  int
}

// NewButtonRow creates a row with the first button active.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setActive(0)
	return r
}

// Active returns the index of the active button.
func (r ButtonRow) Active() int { return r.active }

// Update moves focus with left/right/tab and forwards Enter to the
// active button.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	if len(r.Buttons) == 0 {
		return r, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setActive((r.active - 1 + len(r.Buttons)) % len(r.Buttons))
		return r, nil
	case "right", "l", "tab":
		r.setActive((r.active + 1) % len(r.Buttons))
		return r, nil
	}
	var cmd tea.Cmd
	r.Buttons[r.active], cmd = r.Buttons[r.active].Update(msg)
	return r, cmd
}

// View renders the buttons separated by spaces.
func (r ButtonRow) View() string {
	s := ""
	for i, b := range r.Buttons {
		if i > 0 {
			s += "  "
		}
		s += b.View()
	}
	return s
}

func (r *ButtonRow) setActive(i int) {
	r.active = i
	for j := range r.Buttons {
		r.Buttons[j].Active = j == i
	}
}
