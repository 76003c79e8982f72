// Package tui implements the interactive bookmark browser: a navigable
// table over the store's search results with row selection and open.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmtool/bm/internal/bookmark"
	"github.com/bmtool/bm/internal/clipboard"
	"github.com/bmtool/bm/internal/opener"
	"github.com/bmtool/bm/internal/storage"
)

// Column indexes of the browser table.
const (
	colKey = iota
	colTarget
	colTags
	columnCount
)

// openTimeout bounds a single batch-open command.
const openTimeout = time.Minute

// Model is the bubbletea model for the browser. All event state, the
// cursor and the selection included, lives in the model value: Update
// consumes a message and returns the next state, so the loop is testable
// without a terminal.
type Model struct {
	storePath string
	opener    *opener.Opener
	log       *slog.Logger

	records  []bookmark.Bookmark
	row      int
	col      int
	selected map[int]struct{}
	offset   int
	width    int
	height   int
	status   string

	keys   KeyMap
	styles Styles
}

// New creates a browser over the store file at storePath. A nil logger
// discards diagnostics.
func New(storePath string, op *opener.Opener, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		storePath: storePath,
		opener:    op,
		log:       log,
		selected:  make(map[int]struct{}),
		width:     80,
		height:    24,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
	}
}

type recordsLoadedMsg struct{ records []bookmark.Bookmark }

type loadFailedMsg struct{ err error }

type openedMsg struct {
	opened int
	err    error
}

type copiedMsg struct {
	target string
	err    error
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load
}

// load reads the full store contents (a search with an empty query).
func (m Model) load() tea.Msg {
	records, err := storage.SearchFile(m.storePath, storage.Query{})
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return recordsLoadedMsg{records: records}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case recordsLoadedMsg:
		m.records = msg.records
		m.selected = make(map[int]struct{})
		m.clampCursor()
		m.status = fmt.Sprintf("%d bookmarks", len(m.records))
		return m, nil

	case loadFailedMsg:
		m.log.Error("loading store", "path", m.storePath, "err", msg.err)
		m.status = fmt.Sprintf("load failed: %v", msg.err)
		return m, nil

	case openedMsg:
		// Open is fire and forget: a failure is reported, never fatal.
		if msg.err != nil {
			m.log.Error("opening targets", "opened", msg.opened, "err", msg.err)
			m.status = fmt.Sprintf("opened %d, error: %v", msg.opened, msg.err)
		} else if msg.opened > 0 {
			m.status = fmt.Sprintf("opened %d", msg.opened)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Error("copying target", "err", msg.err)
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else if msg.target != "" {
			m.status = fmt.Sprintf("copied %s", msg.target)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampCursor()

	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampCursor()

	case key.Matches(msg, m.keys.Top):
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.Bottom):
		m.row = len(m.records) - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Select):
		if len(m.records) > 0 {
			if _, ok := m.selected[m.row]; ok {
				delete(m.selected, m.row)
			} else {
				m.selected[m.row] = struct{}{}
			}
		}

	case key.Matches(msg, m.keys.Open):
		return m, m.openActive

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCurrent

	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading"
		return m, m.load
	}

	return m, nil
}

// clampCursor saturates the cursor at the table bounds; it never wraps.
func (m *Model) clampCursor() {
	if m.row >= len(m.records) {
		m.row = len(m.records) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= columnCount {
		m.col = columnCount - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	m.scrollToCursor()
}

// scrollToCursor adjusts the viewport offset so the cursor row is visible.
func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+visible {
		m.offset = m.row - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// activeTargets returns the targets of the selected rows in record order,
// or the current row's target when nothing is selected.
func (m Model) activeTargets() []string {
	if len(m.records) == 0 {
		return nil
	}
	if len(m.selected) == 0 {
		return []string{m.records[m.row].Target}
	}

	var targets []string
	for i, b := range m.records {
		if _, ok := m.selected[i]; ok {
			targets = append(targets, b.Target)
		}
	}
	return targets
}

// openActive hands the active targets to the external opener.
func (m Model) openActive() tea.Msg {
	targets := m.activeTargets()
	if len(targets) == 0 {
		return openedMsg{}
	}
	if m.opener == nil {
		return openedMsg{err: fmt.Errorf("no opener configured")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	opened, err := m.opener.OpenAll(ctx, targets)
	return openedMsg{opened: opened, err: err}
}

// copyCurrent copies the current row's target to the clipboard.
func (m Model) copyCurrent() tea.Msg {
	if len(m.records) == 0 {
		return copiedMsg{}
	}
	target := m.records[m.row].Target
	if err := clipboard.Copy(target); err != nil {
		return copiedMsg{err: err}
	}
	return copiedMsg{target: target}
}
