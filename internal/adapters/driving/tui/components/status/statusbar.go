// Package status provides status bar components for the TUI.
package status

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady       State = "ready"
	StateBusy        State = "busy"
	StateFragmenting State = "fragmenting"
	StateError       State = "error"
)

// restartHint is shown when the engine boundary is gone.
const restartHint = "Engine unavailable. Restart datalex."

// Bar displays application status, job progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	spinner  spinner.Model
	progress progress.Model
	state    State
	message  string
	err      error
	jobState domain.Progress
	summary  *domain.JobSummary
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &Bar{
		styles:   s,
		keymap:   km,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		state:    StateReady,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while work is in flight.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !s.Spinning() {
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

// Spinning reports whether the spinner is animating.
func (s *Bar) Spinning() bool {
	return s.state == StateBusy || (s.state == StateFragmenting && s.jobState.IsIndeterminate())
}

// View renders the status bar on a single line. Key hints are cut first
// when the width runs out.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()
	if s.width <= 0 {
		return s.styles.StatusBar.Render(left + " " + right)
	}

	inner := max(s.width-s.styles.StatusBar.GetHorizontalFrameSize(), 1)
	left = fit(left, inner)
	room := inner - lipgloss.Width(left) - 1
	if room <= 0 {
		right = ""
		room = 0
	}
	right = fit(right, room)
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", max(padding, 0)) + right,
	)
}

// fit truncates styled text to width cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(text)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateBusy:
		label := s.message
		if label == "" {
			label = "Working..."
		}
		return s.spinner.View() + " " + s.styles.Muted.Render(label)
	case StateFragmenting:
		return s.renderJob()
	case StateError:
		return s.styles.Error.Render(ErrorText(s.err))
	case StateReady:
	}

	parts := make([]string, 0, 2)
	if s.message != "" {
		parts = append(parts, s.styles.Normal.Render(s.message))
	}
	if s.summary != nil {
		parts = append(parts, s.summaryText())
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return strings.Join(parts, " ")
}

func (s *Bar) renderJob() string {
	bar := s.progress.ViewAs(float64(s.jobState.Percent()) / 100)
	if s.jobState.IsIndeterminate() {
		return s.spinner.View() + " " + s.styles.Muted.Render("Fragmenting ") + bar
	}
	out := s.styles.Muted.Render("Fragmented ") + bar
	if s.summary != nil {
		out += " " + s.summaryText()
	}
	return out
}

func (s *Bar) summaryText() string {
	text := fmt.Sprintf("(total %d, failed %d)", s.summary.Total, s.summary.Failed)
	if s.summary.Failed > 0 {
		return s.styles.Warning.Render(text)
	}
	return s.styles.Success.Render(text)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// ErrorText renders err for the status line.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return "Error"
	case errors.Is(err, domain.ErrEngineUnavailable):
		return restartHint
	default:
		return "Error: " + err.Error()
	}
}

// SetBusy shows the spinner with label and returns the tick command.
func (s *Bar) SetBusy(label string) tea.Cmd {
	wasSpinning := s.Spinning()
	s.state = StateBusy
	s.message = label
	s.err = nil
	if wasSpinning {
		return nil
	}
	return s.spinner.Tick
}

// SetJob shows fragmentation progress. A tick command is returned while indeterminate.
func (s *Bar) SetJob(p domain.Progress) tea.Cmd {
	wasSpinning := s.Spinning()
	s.state = StateFragmenting
	s.jobState = p
	s.err = nil
	if p.IsIndeterminate() {
		s.summary = nil
		if !wasSpinning {
			return s.spinner.Tick
		}
	}
	return nil
}

// SetSummary records the last job summary.
func (s *Bar) SetSummary(summary domain.JobSummary) {
	s.summary = &summary
}

// Summary returns the last job summary, or nil.
func (s *Bar) Summary() *domain.JobSummary {
	return s.summary
}

// SetError shows err until the next state change.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.err = err
}

// Err returns the displayed error.
func (s *Bar) Err() error {
	return s.err
}

// SetReady returns to the idle state with an optional message.
func (s *Bar) SetReady(message string) {
	s.state = StateReady
	s.message = message
	s.err = nil
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.err = nil
	s.summary = nil
	s.jobState = domain.ProgressNotStarted
}
