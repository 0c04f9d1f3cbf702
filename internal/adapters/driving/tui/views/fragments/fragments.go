// Package fragments provides the paged fragment table view for the TUI.
package fragments

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// footerLines is the height of the pagination footer.
const footerLines = 2

// View is the fragment table with selection and pagination.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	store  driving.FragmentStore
	pages  driving.Paginator

	table  *list.FragmentTable
	state  domain.WorkspaceView
	width  int
	height int
}

// NewView creates a new fragments view.
func NewView(s *styles.Styles, km *keymap.KeyMap, store driving.FragmentStore, pages driving.Paginator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		store:  store,
		pages:  pages,
		table:  list.NewFragmentTable(s),
	}
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh returns a command that re-fetches the current page.
func (v *View) Refresh() tea.Cmd {
	store := v.store
	return func() tea.Msg {
		return messages.WorkspaceRefreshed{Err: store.Refresh(context.Background())}
	}
}

// Update handles messages for the fragments view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.WorkspaceRefreshed, messages.PageChanged, messages.FilesAdded,
		messages.FragmentsDeleted, messages.FragmentationFinished, messages.FragmentOpened,
		messages.WorkspacePublished:
		v.Sync()
		return v, nil
	}

	return v, nil
}

// Sync re-reads the workspace from the store.
// The cursor follows its record when the record is still on the page.
func (v *View) Sync() {
	var cursorID string
	if r := v.table.CursorRecord(); r != nil {
		cursorID = r.ID
	}
	v.state = v.store.View()
	v.table.SetRecords(v.state.Snapshot.Records)
	if cursorID != "" {
		v.table.SetCursor(v.state.Snapshot.IndexOf(cursorID))
	}
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.table.MoveUp()
	case key.Matches(msg, v.keymap.Down):
		v.table.MoveDown()
	case key.Matches(msg, v.keymap.Toggle):
		if r := v.table.CursorRecord(); r != nil {
			v.store.Selection().Toggle(r.ID)
			v.state = v.store.View()
		}
	case key.Matches(msg, v.keymap.SelectAll):
		v.store.Selection().SelectAll(v.state.Snapshot.IDs())
		v.state = v.store.View()
	case key.Matches(msg, v.keymap.ClearSelection):
		v.store.Selection().Clear()
		v.state = v.store.View()
	case key.Matches(msg, v.keymap.Open):
		if v.table.CursorRecord() != nil {
			return v, v.open(v.table.Cursor())
		}
	case key.Matches(msg, v.keymap.PrevPage):
		if v.pages.Boundary().CanPrevious() {
			return v, v.move(v.pages.Previous)
		}
	case key.Matches(msg, v.keymap.NextPage):
		if v.pages.Boundary().CanNext() {
			return v, v.move(v.pages.Next)
		}
	case key.Matches(msg, v.keymap.Refresh):
		return v, v.Refresh()
	case key.Matches(msg, v.keymap.Delete):
		return v, v.deleteSelected()
	}

	return v, nil
}

func (v *View) open(index int) tea.Cmd {
	store := v.store
	return func() tea.Msg {
		return messages.FragmentOpened{Index: index, Err: store.OpenFragment(context.Background(), index)}
	}
}

func (v *View) move(step func(context.Context) (bool, error)) tea.Cmd {
	return func() tea.Msg {
		accepted, err := step(context.Background())
		return messages.PageChanged{Accepted: accepted, Err: err}
	}
}

func (v *View) deleteSelected() tea.Cmd {
	ids := v.store.Selection().IDs()
	if len(ids) == 0 {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: domain.ErrNoSelection}
		}
	}

	store := v.store
	return func() tea.Msg {
		err := store.DeleteFragments(context.Background(), ids)
		return messages.FragmentsDeleted{Count: len(ids), Err: err}
	}
}

// View renders the table and the pagination footer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.table.View(v.state.IsSelected, v.state.Open.ID))
	b.WriteString("\n\n")
	b.WriteString(v.renderFooter())

	return b.String()
}

func (v *View) renderFooter() string {
	snap := v.state.Snapshot
	boundary := snap.Boundary()

	prev := v.styles.Disabled.Render("← prev")
	if boundary.CanPrevious() {
		prev = v.styles.Normal.Render("← prev")
	}
	next := v.styles.Disabled.Render("next →")
	if boundary.CanNext() {
		next = v.styles.Normal.Render("next →")
	}

	page := v.styles.Subtitle.Render(PageLabel(snap))
	parts := []string{prev, page, next}
	if n := len(v.state.Selected); n > 0 {
		parts = append(parts, v.styles.Checked.Render(fmt.Sprintf("%d selected", n)))
	}

	return strings.Join(parts, "  ")
}

// PageLabel renders the one-based page position. An empty workspace reads as page 1 of 1.
func PageLabel(snap domain.Snapshot) string {
	return fmt.Sprintf("Page %d of %d", snap.CurrentPage+1, max(snap.TotalPages, 1))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetDimensions(width, max(height-footerLines, 1))
}

// Cursor returns the row index under the cursor.
func (v *View) Cursor() int {
	return v.table.Cursor()
}

// Workspace returns the last synced workspace view.
func (v *View) Workspace() domain.WorkspaceView {
	return v.state
}
