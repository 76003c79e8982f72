package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column layout: the key column adapts to its content, tags get a fixed
// share, and the target takes the rest of the width.
const (
	minKeyWidth  = 4
	maxKeyWidth  = 16
	tagsWidth    = 20
	markerWidth  = 2 // selection marker + space
	columnGutter = 2
)

var columnTitles = [columnCount]string{"KEY", "TARGET", "TAGS"}

// visibleRows returns how many record rows fit in the current window:
// everything but the header and the status line.
func (m Model) visibleRows() int {
	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model. The whole table is redrawn every iteration.
func (m Model) View() string {
	var sb strings.Builder

	keyWidth := m.keyColumnWidth()
	targetWidth := m.width - markerWidth - keyWidth - tagsWidth - 2*columnGutter
	if targetWidth < 8 {
		targetWidth = 8
	}
	widths := [columnCount]int{keyWidth, targetWidth, tagsWidth}

	// Header.
	header := strings.Repeat(" ", markerWidth)
	for c := 0; c < columnCount; c++ {
		if c > 0 {
			header += strings.Repeat(" ", columnGutter)
		}
		header += pad(columnTitles[c], widths[c])
	}
	sb.WriteString(m.styles.Header.Render(header))
	sb.WriteString("\n")

	// Rows.
	visible := m.visibleRows()
	for i := m.offset; i < len(m.records) && i < m.offset+visible; i++ {
		b := m.records[i]
		cells := [columnCount]string{b.Key, b.Target, strings.Join(b.Tags, " ")}

		marker := "  "
		if _, ok := m.selected[i]; ok {
			marker = m.styles.Marker.Render("*") + " "
		}
		sb.WriteString(marker)

		for c := 0; c < columnCount; c++ {
			if c > 0 {
				sb.WriteString(strings.Repeat(" ", columnGutter))
			}
			cell := pad(truncate(cells[c], widths[c]), widths[c])
			switch {
			case i == m.row && c == m.col:
				cell = m.styles.Cursor.Render(cell)
			case m.isSelected(i):
				cell = m.styles.Selected.Render(cell)
			default:
				cell = m.styles.Row.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	// Fill the remaining height so the status line stays at the bottom.
	shown := len(m.records) - m.offset
	if shown > visible {
		shown = visible
	}
	if shown < 0 {
		shown = 0
	}
	for i := shown; i < visible; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Status.Render(m.statusLine()))
	return sb.String()
}

func (m Model) isSelected(i int) bool {
	_, ok := m.selected[i]
	return ok
}

func (m Model) statusLine() string {
	left := m.status
	if left == "" {
		left = fmt.Sprintf("%d bookmarks", len(m.records))
	}
	if len(m.selected) > 0 {
		left += fmt.Sprintf("  (%d selected)", len(m.selected))
	}
	return truncate(left+"  enter open · space select · y copy · r reload · q quit", m.width)
}

func (m Model) keyColumnWidth() int {
	w := minKeyWidth
	for _, b := range m.records {
		if len(b.Key) > w {
			w = len(b.Key)
		}
	}
	if w > maxKeyWidth {
		w = maxKeyWidth
	}
	return w
}

// truncate shortens s to width cells, appending an ellipsis when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
