package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/ui/theme"
)

// BoardItem is a draggable label.
type BoardItem struct {
	ID    string
	Label string
}

// BoardZone is a drop target.
type BoardZone struct {
	ID    string
	Label string
}

// ZoneBoard is a keyboard drag-and-drop board. Up/down pick an item
// from the tray, enter grabs it, left/right pick a zone, enter drops.
// Backspace pulls the most recently placed item back to the tray.
// With the tray empty, enter submits.
type ZoneBoard struct {
	Prompt    string
	Items     []BoardItem
	Zones     []BoardZone
	Submitted bool

	itemCursor int
	zoneCursor int
	grabbed    int // index into Items, -1 when nothing grabbed

	placement map[string]string // item ID -> zone ID
	history   []string          // item IDs in placement order
}

// NewZoneBoard creates a board over the given items and zones.
func NewZoneBoard(prompt string, items []BoardItem, zones []BoardZone) ZoneBoard {
	return ZoneBoard{
		Prompt:    prompt,
		Items:     items,
		Zones:     zones,
		grabbed:   -1,
		placement: make(map[string]string),
	}
}

func (z ZoneBoard) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (z ZoneBoard) Update(msg tea.Msg) (ZoneBoard, tea.Cmd) {
	if z.Submitted {
		return z, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return z, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if z.grabbed < 0 {
			z.itemCursor = z.prevTrayItem(z.itemCursor)
		}
	case "down", "j":
		if z.grabbed < 0 {
			z.itemCursor = z.nextTrayItem(z.itemCursor)
		}
	case "left", "h":
		if z.grabbed >= 0 && z.zoneCursor > 0 {
			z.zoneCursor--
		}
	case "right", "l":
		if z.grabbed >= 0 && z.zoneCursor < len(z.Zones)-1 {
			z.zoneCursor++
		}
	case "enter", " ", "space":
		switch {
		case z.grabbed >= 0:
			z.drop()
		case z.Complete():
			if kmsg.String() == "enter" {
				z.Submitted = true
			}
		default:
			z.grab()
		}
	case "backspace":
		z.undo()
	}

	return z, nil
}

func (z *ZoneBoard) grab() {
	if z.itemCursor < 0 || z.itemCursor >= len(z.Items) {
		return
	}
	if _, placed := z.placement[z.Items[z.itemCursor].ID]; placed {
		return
	}
	z.grabbed = z.itemCursor
}

func (z *ZoneBoard) drop() {
	item := z.Items[z.grabbed]
	zone := z.Zones[z.zoneCursor]
	z.placement[item.ID] = zone.ID
	z.history = append(z.history, item.ID)
	z.grabbed = -1
	z.itemCursor = z.nextTrayItem(z.itemCursor - 1)
}

func (z *ZoneBoard) undo() {
	if z.grabbed >= 0 {
		z.grabbed = -1
		return
	}
	if len(z.history) == 0 {
		return
	}
	last := z.history[len(z.history)-1]
	z.history = z.history[:len(z.history)-1]
	delete(z.placement, last)
}

func (z ZoneBoard) nextTrayItem(from int) int {
	for i := from + 1; i < len(z.Items); i++ {
		if _, placed := z.placement[z.Items[i].ID]; !placed {
			return i
		}
	}
	for i := 0; i <= from && i < len(z.Items); i++ {
		if _, placed := z.placement[z.Items[i].ID]; !placed {
			return i
		}
	}
	return from
}

func (z ZoneBoard) prevTrayItem(from int) int {
	for i := from - 1; i >= 0; i-- {
		if _, placed := z.placement[z.Items[i].ID]; !placed {
			return i
		}
	}
	for i := len(z.Items) - 1; i >= from; i-- {
		if _, placed := z.placement[z.Items[i].ID]; !placed {
			return i
		}
	}
	return from
}

// Complete reports whether every item has been placed.
func (z ZoneBoard) Complete() bool {
	return len(z.placement) == len(z.Items)
}

// Placements returns item IDs grouped by zone ID, in item order.
func (z ZoneBoard) Placements() map[string][]string {
	out := make(map[string][]string, len(z.Zones))
	for _, item := range z.Items {
		if zoneID, ok := z.placement[item.ID]; ok {
			out[zoneID] = append(out[zoneID], item.ID)
		}
	}
	return out
}

// Reset returns all items to the tray for another attempt.
func (z *ZoneBoard) Reset() {
	z.Submitted = false
	z.placement = make(map[string]string)
	z.history = nil
	z.grabbed = -1
	z.itemCursor = 0
	z.zoneCursor = 0
}

// View renders the zones side by side with the item tray below.
func (z ZoneBoard) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := promptStyle.Render(z.Prompt) + "\n\n"

	labelByID := make(map[string]string, len(z.Items))
	for _, item := range z.Items {
		labelByID[item.ID] = item.Label
	}

	var boxes []string
	for i, zone := range z.Zones {
		var lines []string
		header := zone.Label
		if z.grabbed >= 0 && i == z.zoneCursor {
			header = "▸ " + header
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(header))
		for _, item := range z.Items {
			if z.placement[item.ID] == zone.ID {
				lines = append(lines, theme.Unselected.Render(labelByID[item.ID]))
			}
		}
		border := theme.Border
		if z.grabbed >= 0 && i == z.zoneCursor {
			border = theme.Primary
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2).
			Render(strings.Join(lines, "\n"))
		boxes = append(boxes, box)
	}
	s += lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n\n"

	var tray []string
	for i, item := range z.Items {
		if _, placed := z.placement[item.ID]; placed {
			continue
		}
		switch {
		case i == z.grabbed:
			tray = append(tray, theme.Selected.Render("«"+item.Label+"»"))
		case i == z.itemCursor && !z.Submitted:
			tray = append(tray, theme.Selected.Render("["+item.Label+"]"))
		default:
			tray = append(tray, theme.Unselected.Render(" "+item.Label+" "))
		}
	}
	if len(tray) == 0 {
		s += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("(all placed — enter to check)")
	} else {
		s += "  " + strings.Join(tray, " ")
	}

	if z.grabbed >= 0 {
		s += "\n\n  " + theme.Hint.Render(fmt.Sprintf("place %q: ←/→ choose zone, enter drops", z.Items[z.grabbed].Label))
	}

	return s
}
