package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmtool/bm/internal/bookmark"
)

func testRecords() []bookmark.Bookmark {
	return []bookmark.Bookmark{
		{Key: "gh", Target: "https://www.github.com", Tags: []string{"dev", "code"}},
		{Key: "gl", Target: "https://gitlab.com", Tags: []string{"dev", "ci"}},
		{Key: "hn", Target: "https://news.ycombinator.com", Tags: []string{"news", "tech"}},
	}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New("", nil, nil)
	updated, _ := m.Update(recordsLoadedMsg{records: testRecords()})
	return updated.(Model)
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestCursor_SaturatesAtBounds(t *testing.T) {
	m := loadedModel(t)

	// Down past the last row saturates.
	for i := 0; i < 10; i++ {
		m, _ = step(t, m, keyMsg(tea.KeyDown))
	}
	if m.row != 2 {
		t.Errorf("row after 10 downs = %d, want 2", m.row)
	}

	// Up past the first row saturates.
	for i := 0; i < 10; i++ {
		m, _ = step(t, m, keyMsg(tea.KeyUp))
	}
	if m.row != 0 {
		t.Errorf("row after 10 ups = %d, want 0", m.row)
	}

	// Columns saturate the same way.
	for i := 0; i < 10; i++ {
		m, _ = step(t, m, keyMsg(tea.KeyRight))
	}
	if m.col != columnCount-1 {
		t.Errorf("col after 10 rights = %d, want %d", m.col, columnCount-1)
	}
	for i := 0; i < 10; i++ {
		m, _ = step(t, m, keyMsg(tea.KeyLeft))
	}
	if m.col != 0 {
		t.Errorf("col after 10 lefts = %d, want 0", m.col)
	}
}

func TestCursor_BoundedUnderArbitraryMoves(t *testing.T) {
	m := loadedModel(t)

	moves := []tea.KeyMsg{
		keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyUp),
		keyMsg(tea.KeyRight), keyMsg(tea.KeyDown), keyMsg(tea.KeyLeft),
		runeMsg('G'), keyMsg(tea.KeyDown), runeMsg('g'), keyMsg(tea.KeyUp),
	}
	for round := 0; round < 50; round++ {
		msg := moves[round%len(moves)]
		m, _ = step(t, m, msg)
		if m.row < 0 || m.row >= len(m.records) {
			t.Fatalf("round %d: row %d out of [0,%d)", round, m.row, len(m.records))
		}
		if m.col < 0 || m.col >= columnCount {
			t.Fatalf("round %d: col %d out of [0,%d)", round, m.col, columnCount)
		}
	}
}

func TestCursor_EmptyRecords(t *testing.T) {
	m := New("", nil, nil)

	for _, msg := range []tea.KeyMsg{keyMsg(tea.KeyDown), keyMsg(tea.KeyUp), keyMsg(tea.KeySpace), runeMsg('G')} {
		m, _ = step(t, m, msg)
	}
	if m.row != 0 {
		t.Errorf("row on empty records = %d, want 0", m.row)
	}
}

func TestTopAndBottom(t *testing.T) {
	m := loadedModel(t)

	m, _ = step(t, m, runeMsg('G'))
	if m.row != 2 {
		t.Errorf("row after G = %d, want 2", m.row)
	}
	m, _ = step(t, m, runeMsg('g'))
	if m.row != 0 {
		t.Errorf("row after g = %d, want 0", m.row)
	}
}

func TestSelect_TogglesCurrentRow(t *testing.T) {
	m := loadedModel(t)

	m, _ = step(t, m, keyMsg(tea.KeyDown))
	m, _ = step(t, m, keyMsg(tea.KeySpace))
	if _, ok := m.selected[1]; !ok {
		t.Fatal("row 1 not selected after space")
	}

	m, _ = step(t, m, keyMsg(tea.KeySpace))
	if _, ok := m.selected[1]; ok {
		t.Fatal("row 1 still selected after second space")
	}
}

func TestActiveTargets_CurrentRowWhenNoSelection(t *testing.T) {
	m := loadedModel(t)
	m, _ = step(t, m, keyMsg(tea.KeyDown))

	targets := m.activeTargets()
	if len(targets) != 1 || targets[0] != "https://gitlab.com" {
		t.Errorf("activeTargets() = %v, want current row target", targets)
	}
}

func TestActiveTargets_SelectedRowsInRecordOrder(t *testing.T) {
	m := loadedModel(t)

	// Select row 2, then row 0; targets must come back in record order.
	m, _ = step(t, m, runeMsg('G'))
	m, _ = step(t, m, keyMsg(tea.KeySpace))
	m, _ = step(t, m, runeMsg('g'))
	m, _ = step(t, m, keyMsg(tea.KeySpace))

	targets := m.activeTargets()
	if len(targets) != 2 {
		t.Fatalf("activeTargets() returned %d targets, want 2", len(targets))
	}
	if targets[0] != "https://www.github.com" || targets[1] != "https://news.ycombinator.com" {
		t.Errorf("activeTargets() = %v, want record order", targets)
	}
}

func TestOpen_FailureDoesNotAbortLoop(t *testing.T) {
	m := loadedModel(t) // nil opener: open fails

	m2, cmd := step(t, m, keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	msg := cmd()
	opened, ok := msg.(openedMsg)
	if !ok {
		t.Fatalf("open command returned %T, want openedMsg", msg)
	}
	if opened.err == nil {
		t.Fatal("open with nil opener returned nil error")
	}

	// Feeding the failure back leaves the browser running with a status.
	m3, cmd := step(t, m2, msg)
	if cmd != nil {
		t.Errorf("openedMsg produced a command: %v", cmd)
	}
	if !strings.Contains(m3.status, "error") {
		t.Errorf("status = %q, want open error reported", m3.status)
	}
	if m3.row != m2.row || len(m3.records) != len(m2.records) {
		t.Error("open failure altered browser state")
	}
}

func TestReload_IssuesLoadCommand(t *testing.T) {
	m := loadedModel(t)

	_, cmd := step(t, m, runeMsg('r'))
	if cmd == nil {
		t.Fatal("reload produced no command")
	}
	// The model points at no store file, so load reports an empty store.
	msg := cmd()
	loaded, ok := msg.(recordsLoadedMsg)
	if !ok {
		t.Fatalf("reload command returned %T, want recordsLoadedMsg", msg)
	}
	if len(loaded.records) != 0 {
		t.Errorf("reload returned %d records, want 0", len(loaded.records))
	}
}

func TestRecordsLoaded_ClearsSelectionAndClampsCursor(t *testing.T) {
	m := loadedModel(t)
	m, _ = step(t, m, runeMsg('G'))
	m, _ = step(t, m, keyMsg(tea.KeySpace))

	m, _ = step(t, m, recordsLoadedMsg{records: testRecords()[:1]})
	if len(m.selected) != 0 {
		t.Errorf("selection survived reload: %v", m.selected)
	}
	if m.row != 0 {
		t.Errorf("row after shrinking reload = %d, want 0", m.row)
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)

	_, cmd := step(t, m, runeMsg('q'))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("q command returned %v, want tea.Quit", msg)
	}
}

func TestView_RendersAllColumns(t *testing.T) {
	m := loadedModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	out := m.View()
	for _, want := range []string{"KEY", "TARGET", "TAGS", "gh", "gitlab", "news tech"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
