// Package screen declares what every Gramiz screen must provide to
// the router and the app frame.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/ui/layout"
)

// Screen is one full-window view (home, practice, summary, ...).
type Screen interface {
	// Init runs when the screen is first shown.
	Init() tea.Cmd

	// Update handles a message and returns the replacement screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the app frame adds header and footer.
	View(width, height int) string

	// Title labels the screen in the header.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
