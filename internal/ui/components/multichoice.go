package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Space toggles an option,
// enter submits. Questions with a single correct answer work the same
// way: enter on an option submits it directly.
type MultiChoice struct {
	Prompt    string
	Options   []string
	Cursor    int
	Checked   map[int]bool
	Submitted bool

	// correct marks option indexes as right or wrong after grading.
	correct map[int]bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Checked: make(map[int]bool),
	}
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case " ", "space":
		m.Checked[m.Cursor] = !m.Checked[m.Cursor]
	case "enter":
		if len(m.Checked) == 0 || !anyChecked(m.Checked) {
			m.Checked[m.Cursor] = true
		}
		m.Submitted = true
	}

	return m, nil
}

func anyChecked(checked map[int]bool) bool {
	for _, on := range checked {
		if on {
			return true
		}
	}
	return false
}

// Selections returns the checked option texts in display order.
func (m MultiChoice) Selections() []string {
	var out []string
	for i, opt := range m.Options {
		if m.Checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// MarkResult records which options were correct so the next View call
// can color them. Call after grading a submission.
func (m *MultiChoice) MarkResult(correctOptions []string) {
	m.correct = make(map[int]bool)
	for i, opt := range m.Options {
		for _, c := range correctOptions {
			if opt == c {
				m.correct[i] = true
			}
		}
	}
}

// Reset clears the submission so the learner can try again.
func (m *MultiChoice) Reset() {
	m.Submitted = false
	m.Checked = make(map[int]bool)
	m.correct = nil
}

// View renders the option list.
func (m MultiChoice) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := promptStyle.Render(m.Prompt) + "\n\n"

	for i, opt := range m.Options {
		label := string(rune('a' + i))
		prefix := "  "
		if i == m.Cursor && !m.Submitted {
			prefix = "▸ "
		}
		mark := " "
		if m.Checked[i] {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		switch {
		case m.Submitted && m.correct != nil && m.correct[i]:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && m.Checked[i]:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
