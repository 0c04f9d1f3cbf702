// Package content provides the viewer for the open fragment.
package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// headerLines is the space taken by the title and the source line.
const headerLines = 3

// minWrap keeps wrapping usable on very narrow terminals.
const minWrap = 20

// View renders the open fragment in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	open    domain.OpenFragment
	focused bool
	width   int
	height  int
}

// NewView creates an empty content viewer.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 10),
		width:    80,
		height:   10 + headerLines,
	}
}

// SetFragment shows open. Scrolling restarts when a different fragment is opened.
func (v *View) SetFragment(open domain.OpenFragment) {
	changed := open.ID != v.open.ID
	sameText := open.Content() == v.open.Content()
	v.open = open
	if changed || !sameText {
		v.viewport.SetContent(Wrap(open.Content(), v.viewport.Width))
	}
	if changed {
		v.viewport.GotoTop()
	}
}

// Fragment returns the fragment being shown.
func (v *View) Fragment() domain.OpenFragment {
	return v.open
}

// Wrap soft-wraps text at word boundaries and hard-wraps words longer than width.
func Wrap(text string, width int) string {
	width = max(width, minWrap)
	return wrap.String(wordwrap.String(text, width), width)
}

// Focus gives the viewer keyboard scrolling.
func (v *View) Focus() {
	v.focused = true
}

// Blur returns keyboard scrolling to the table.
func (v *View) Blur() {
	v.focused = false
}

// Focused reports whether the viewer has focus.
func (v *View) Focused() bool {
	return v.focused
}

// Update scrolls while focused. Back hands focus to the table.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if !v.focused {
			return v, nil
		}
		if key.Matches(msg, v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.FocusChanged{Focus: messages.FocusTable}
			}
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the viewer.
func (v *View) View() string {
	var b strings.Builder

	if v.open.IsEmpty() {
		b.WriteString(v.styles.Muted.Render("Nothing open. Press enter on a row to read it."))
		return b.String()
	}

	r := v.open.Record
	b.WriteString(v.styles.Title.Render(r.Label()))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s words", humanize.Comma(int64(r.WordCount)))
	if r.SourcePath != "" {
		meta = r.SourcePath + "  " + meta
	}
	b.WriteString(v.styles.Muted.Render(meta))
	b.WriteString("\n\n")

	if strings.TrimSpace(v.open.Content()) == "" {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		return b.String()
	}

	b.WriteString(v.viewport.View())
	if v.viewport.TotalLineCount() > v.viewport.Height {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%d%%]", int(v.viewport.ScrollPercent()*100))))
	}

	return b.String()
}

// SetDimensions sets the view dimensions and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width, minWrap)
	v.viewport.Height = max(height-headerLines-1, 1)
	v.viewport.SetContent(Wrap(v.open.Content(), v.viewport.Width))
}

// AtTop reports whether the viewport shows the first line.
func (v *View) AtTop() bool {
	return v.viewport.AtTop()
}
