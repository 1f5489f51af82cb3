package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/ui/theme"
)

// Button fires its action on enter while active. Screens with a
// single confirm action (quit prompt, summary) use it.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton builds a Button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update reacts to enter when the button is active.
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

// View renders the button in its active or inactive style.
func (b Button) View() string {
	label := "  â–¸ " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
