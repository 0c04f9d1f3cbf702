// Package addfiles provides the prompt for adding documents by path.
package addfiles

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// Prompt reads a comma-separated list of document paths.
type Prompt struct {
	styles *styles.Styles
	field  *input.Field
	err    error
}

// NewPrompt creates a new add-files prompt.
func NewPrompt(s *styles.Styles) *Prompt {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Prompt{
		styles: s,
		field:  input.NewField(s, "Paths", "notes.txt, ~/docs/report.md"),
	}
}

// Open clears and focuses the prompt.
func (p *Prompt) Open() tea.Cmd {
	p.field.Reset()
	p.err = nil
	return p.field.Focus()
}

// Update handles prompt keys.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			p.field.Blur()
			return p, func() tea.Msg {
				return messages.FocusChanged{Focus: messages.FocusTable}
			}
		case "enter":
			paths := ParsePaths(p.field.Value())
			if len(paths) == 0 {
				p.err = domain.ErrInvalidInput
				return p, nil
			}
			p.field.Blur()
			return p, func() tea.Msg {
				return messages.AddFilesRequested{Paths: paths}
			}
		}
	}

	var cmd tea.Cmd
	p.field, cmd = p.field.Update(msg)
	return p, cmd
}

// ParsePaths splits a comma-separated list, trimming blanks and file:// prefixes
// and expanding a leading ~.
func ParsePaths(value string) []string {
	var paths []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paths = append(paths, expandHome(strings.TrimPrefix(part, "file://")))
	}
	return paths
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// View renders the prompt.
func (p *Prompt) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render("Add documents"))
	b.WriteString("\n\n")
	b.WriteString(p.field.View())
	b.WriteString("\n")
	if p.err != nil {
		b.WriteString(p.styles.Error.Render("Enter at least one path."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.styles.Help.Render("[enter] add  [esc] cancel"))

	return p.styles.Dialog.Render(b.String())
}

// SetWidth sets the input width.
func (p *Prompt) SetWidth(width int) {
	p.field.SetWidth(width - 12)
}

// Err returns the inline validation error.
func (p *Prompt) Err() error {
	return p.err
}
