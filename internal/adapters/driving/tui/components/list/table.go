// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// Column widths of the fixed table columns.
const (
	numberWidth = 5
	wordsWidth  = 9
	checkWidth  = 4
	minName     = 8
)

// FragmentTable renders one page of fragments with a cursor.
type FragmentTable struct {
	records []domain.FragmentRecord
	cursor  int
	offset  int
	styles  *styles.Styles
	width   int
	height  int
}

// NewFragmentTable creates an empty table.
func NewFragmentTable(s *styles.Styles) *FragmentTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FragmentTable{
		styles: s,
		width:  80,
		height: 10,
	}
}

// SetRecords replaces the rows, keeping the cursor in range.
func (t *FragmentTable) SetRecords(records []domain.FragmentRecord) {
	t.records = records
	if t.cursor >= len(records) {
		t.cursor = max(len(records)-1, 0)
	}
	t.clampOffset()
}

// Records returns the current rows.
func (t *FragmentTable) Records() []domain.FragmentRecord {
	return t.records
}

// Cursor returns the row index under the cursor.
func (t *FragmentTable) Cursor() int {
	return t.cursor
}

// SetCursor moves the cursor to index if it is in range.
func (t *FragmentTable) SetCursor(index int) {
	if index >= 0 && index < len(t.records) {
		t.cursor = index
		t.clampOffset()
	}
}

// CursorRecord returns the record under the cursor, or nil when empty.
func (t *FragmentTable) CursorRecord() *domain.FragmentRecord {
	if t.cursor < 0 || t.cursor >= len(t.records) {
		return nil
	}
	return &t.records[t.cursor]
}

// MoveUp moves the cursor up.
func (t *FragmentTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.clampOffset()
	}
}

// MoveDown moves the cursor down.
func (t *FragmentTable) MoveDown() {
	if t.cursor < len(t.records)-1 {
		t.cursor++
		t.clampOffset()
	}
}

// SetDimensions sets the component dimensions.
func (t *FragmentTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.clampOffset()
}

// View renders the header and the visible rows.
// isSelected reports checkbox state; openID marks the row shown in the content viewer.
func (t *FragmentTable) View(isSelected func(id string) bool, openID string) string {
	if len(t.records) == 0 {
		return t.styles.Muted.Render("No fragments. Press o to add files or i to type paths.")
	}

	nameWidth := t.nameWidth()
	lines := make([]string, 0, t.visibleRows()+1)
	header := fmt.Sprintf("  %-*s%s%*s %s",
		numberWidth, "#", runewidth.FillRight("Name", nameWidth), wordsWidth, "Words", " Sel")
	lines = append(lines, t.styles.Subtitle.Render(header))

	end := min(t.offset+t.visibleRows(), len(t.records))
	for i := t.offset; i < end; i++ {
		r := t.records[i]
		lines = append(lines, t.renderRow(i, r, nameWidth, isSelected != nil && isSelected(r.ID), r.ID == openID))
	}

	return strings.Join(lines, "\n")
}

func (t *FragmentTable) renderRow(index int, r domain.FragmentRecord, nameWidth int, checked, open bool) string {
	indicator := "  "
	if open {
		indicator = "• "
	}
	if index == t.cursor {
		indicator = "> "
	}

	name := runewidth.FillRight(runewidth.Truncate(r.Label(), nameWidth-1, "…"), nameWidth)
	words := fmt.Sprintf("%*s", wordsWidth, humanize.Comma(int64(r.WordCount)))
	box := " [ ]"
	if checked {
		box = " [x]"
	}

	row := fmt.Sprintf("%s%-*d%s%s", indicator, numberWidth, index+1, name, words)
	if index == t.cursor {
		return t.styles.Selected.Render(row + box)
	}
	if checked {
		return t.styles.Normal.Render(row) + t.styles.Checked.Render(box)
	}
	return t.styles.Normal.Render(row) + t.styles.Muted.Render(box)
}

func (t *FragmentTable) nameWidth() int {
	return max(t.width-2-numberWidth-wordsWidth-checkWidth-1, minName)
}

func (t *FragmentTable) visibleRows() int {
	return max(t.height-1, 1)
}

// clampOffset keeps the cursor row visible.
func (t *FragmentTable) clampOffset() {
	rows := t.visibleRows()
	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+rows {
		t.offset = t.cursor - rows + 1
	}
	if t.offset > max(len(t.records)-rows, 0) {
		t.offset = max(len(t.records)-rows, 0)
	}
}
