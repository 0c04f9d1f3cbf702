// Package fragmentation provides the dialog that configures a fragmentation job.
package fragmentation

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// Dialog rows in focus order.
const (
	rowMode = iota
	rowTarget
	rowTolerance
	rowCount
)

// Dialog collects mode, target and tolerance for the selected fragments.
type Dialog struct {
	styles    *styles.Styles
	mode      domain.FragmentationMode
	target    *input.Field
	tolerance *input.Field
	focus     int
	selected  []string
	err       error
	width     int
}

// NewDialog creates a closed dialog.
func NewDialog(s *styles.Styles) *Dialog {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Dialog{
		styles:    s,
		mode:      domain.ModeByWordCount,
		target:    input.NewNumberField(s, "Target words"),
		tolerance: input.NewNumberField(s, "Tolerance"),
		width:     60,
	}
}

// Open prepares the dialog for ids, prefilled from defaults.
func (d *Dialog) Open(ids []string, defaults domain.FragmentationSettings) {
	d.selected = append([]string(nil), ids...)
	d.mode = defaults.Mode
	if !d.mode.IsValid() {
		d.mode = domain.ModeByWordCount
	}
	d.target.SetValue(strconv.Itoa(defaults.Target))
	d.tolerance.SetValue(strconv.Itoa(defaults.Tolerance))
	d.err = nil
	d.setFocus(rowMode)
}

// Init initialises the dialog.
func (d *Dialog) Init() tea.Cmd {
	return nil
}

// Update handles dialog keys. Enter emits FragmentationRequested when the request is valid.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc":
		return d, func() tea.Msg {
			return messages.FocusChanged{Focus: messages.FocusTable}
		}
	case "enter":
		req, err := d.Request()
		if err != nil {
			d.err = err
			return d, nil
		}
		d.err = nil
		return d, func() tea.Msg {
			return messages.FragmentationRequested{Request: req}
		}
	case "tab", "down":
		d.setFocus(d.step(1))
		return d, nil
	case "shift+tab", "up":
		d.setFocus(d.step(-1))
		return d, nil
	}

	if d.focus == rowMode {
		switch keyMsg.String() {
		case "left", "right", " ", "h", "l":
			d.toggleMode()
		}
		return d, nil
	}

	var cmd tea.Cmd
	if d.focus == rowTarget {
		d.target, cmd = d.target.Update(keyMsg)
	} else {
		d.tolerance, cmd = d.tolerance.Update(keyMsg)
	}
	return d, cmd
}

// Request builds and validates the request from the dialog fields.
func (d *Dialog) Request() (domain.FragmentationRequest, error) {
	req := domain.FragmentationRequest{
		SelectedIDs: d.selected,
		Mode:        d.mode,
	}
	if d.mode.UsesTarget() {
		target, err := d.target.Int()
		if err != nil {
			return req, fmt.Errorf("%w: target word count must be a number", domain.ErrInvalidConfiguration)
		}
		tolerance, err := d.tolerance.Int()
		if err != nil {
			return req, fmt.Errorf("%w: tolerance must be a number", domain.ErrInvalidConfiguration)
		}
		req.TargetWordCount = target
		req.Tolerance = tolerance
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func (d *Dialog) toggleMode() {
	if d.mode == domain.ModeByWordCount {
		d.mode = domain.ModeByLine
	} else {
		d.mode = domain.ModeByWordCount
	}
	d.err = nil
}

// step returns the next focusable row. Number fields are skipped in line mode.
func (d *Dialog) step(delta int) int {
	if !d.mode.UsesTarget() {
		return rowMode
	}
	return (d.focus + delta + rowCount) % rowCount
}

func (d *Dialog) setFocus(row int) {
	d.focus = row
	d.target.Blur()
	d.tolerance.Blur()
	switch row {
	case rowTarget:
		d.target.Focus()
	case rowTolerance:
		d.tolerance.Focus()
	}
}

// View renders the dialog.
func (d *Dialog) View() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("Fragment texts"))
	b.WriteString("\n")
	b.WriteString(d.styles.Muted.Render(fmt.Sprintf("%d fragment(s) selected", len(d.selected))))
	b.WriteString("\n\n")

	b.WriteString(d.renderMode())
	b.WriteString("\n")
	if d.mode.UsesTarget() {
		b.WriteString(d.target.View())
		b.WriteString("\n")
		b.WriteString(d.tolerance.View())
		b.WriteString("\n")
		if target, err := d.target.Int(); err == nil {
			if tol, err := d.tolerance.Int(); err == nil {
				lower, upper := domain.FragmentationRequest{TargetWordCount: target, Tolerance: tol}.Bounds()
				b.WriteString(d.styles.Muted.Render(fmt.Sprintf("Accepts %d to %d words per piece", max(lower, 0), upper)))
				b.WriteString("\n")
			}
		}
	} else {
		b.WriteString(d.styles.Muted.Render("Every non-blank line becomes a fragment."))
		b.WriteString("\n")
	}

	if d.err != nil {
		b.WriteString("\n")
		b.WriteString(d.styles.Error.Render(d.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.styles.Help.Render("[tab] next field  [←/→] mode  [enter] run  [esc] cancel"))

	return d.styles.Dialog.Width(d.width).Render(b.String())
}

func (d *Dialog) renderMode() string {
	label := d.styles.Subtitle.Render("Mode: ")
	modes := make([]string, 0, 2)
	for _, m := range []domain.FragmentationMode{domain.ModeByWordCount, domain.ModeByLine} {
		text := m.Description()
		switch {
		case m == d.mode && d.focus == rowMode:
			modes = append(modes, d.styles.Selected.Render("("+text+")"))
		case m == d.mode:
			modes = append(modes, d.styles.Checked.Render("("+text+")"))
		default:
			modes = append(modes, d.styles.Muted.Render(" "+text+" "))
		}
	}
	return label + strings.Join(modes, " ")
}

// SetWidth sets the dialog width.
func (d *Dialog) SetWidth(width int) {
	d.width = max(width, 30)
}

// Mode returns the chosen mode.
func (d *Dialog) Mode() domain.FragmentationMode {
	return d.mode
}

// Err returns the inline validation error.
func (d *Dialog) Err() error {
	return d.err
}
