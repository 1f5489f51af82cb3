package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/ui/theme"
)

// WordBank is a sentence-building component: a shuffled bank of words
// the learner picks from, in order, to assemble a sentence. Left/right
// move the cursor, space or enter picks the word under the cursor,
// backspace returns the last picked word to the bank. Once the bank is
// empty, enter submits.
type WordBank struct {
	Prompt    string
	Words     []string
	Cursor    int
	Submitted bool

	used  []bool
	order []int
}

// NewWordBank creates a word bank over the given words.
func NewWordBank(prompt string, words []string) WordBank {
	return WordBank{
		Prompt: prompt,
		Words:  words,
		used:   make([]bool, len(words)),
	}
}

func (w WordBank) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (w WordBank) Update(msg tea.Msg) (WordBank, tea.Cmd) {
	if w.Submitted {
		return w, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch kmsg.String() {
	case "left", "h":
		w.Cursor = w.prevUnused(w.Cursor)
	case "right", "l":
		w.Cursor = w.nextUnused(w.Cursor)
	case " ", "space":
		w.pick()
	case "enter":
		if w.Complete() {
			w.Submitted = true
		} else {
			w.pick()
		}
	case "backspace":
		w.undo()
	}

	return w, nil
}

func (w *WordBank) pick() {
	if w.Cursor < 0 || w.Cursor >= len(w.Words) || w.used[w.Cursor] {
		return
	}
	w.used[w.Cursor] = true
	w.order = append(w.order, w.Cursor)
	w.Cursor = w.nextUnused(w.Cursor)
}

func (w *WordBank) undo() {
	if len(w.order) == 0 {
		return
	}
	last := w.order[len(w.order)-1]
	w.order = w.order[:len(w.order)-1]
	w.used[last] = false
	w.Cursor = last
}

func (w WordBank) nextUnused(from int) int {
	for i := from + 1; i < len(w.Words); i++ {
		if !w.used[i] {
			return i
		}
	}
	for i := 0; i <= from && i < len(w.Words); i++ {
		if !w.used[i] {
			return i
		}
	}
	return from
}

func (w WordBank) prevUnused(from int) int {
	for i := from - 1; i >= 0; i-- {
		if !w.used[i] {
			return i
		}
	}
	for i := len(w.Words) - 1; i >= from; i-- {
		if !w.used[i] {
			return i
		}
	}
	return from
}

// Complete reports whether every word has been picked.
func (w WordBank) Complete() bool {
	return len(w.order) == len(w.Words)
}

// Sentence returns the picked words in pick order.
func (w WordBank) Sentence() []string {
	out := make([]string, 0, len(w.order))
	for _, idx := range w.order {
		out = append(out, w.Words[idx])
	}
	return out
}

// Reset returns all words to the bank for another attempt.
func (w *WordBank) Reset() {
	w.Submitted = false
	w.order = nil
	w.used = make([]bool, len(w.Words))
	w.Cursor = 0
}

// View renders the assembled sentence above the remaining bank.
func (w WordBank) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := promptStyle.Render(w.Prompt) + "\n\n"

	sentence := strings.Join(w.Sentence(), " ")
	if sentence == "" {
		sentence = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("(pick words below)")
	} else {
		sentence = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(sentence)
	}
	s += "  " + sentence + "\n\n"

	var bank []string
	for i, word := range w.Words {
		if w.used[i] {
			continue
		}
		if i == w.Cursor && !w.Submitted {
			bank = append(bank, theme.Selected.Render("["+word+"]"))
		} else {
			bank = append(bank, theme.Unselected.Render(" "+word+" "))
		}
	}
	s += "  " + strings.Join(bank, " ")

	return s
}
