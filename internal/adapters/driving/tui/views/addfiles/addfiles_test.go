package addfiles

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

func typeText(p *Prompt, s string) {
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(nil)

	require.NotNil(t, p)
	assert.Contains(t, p.View(), "Add documents")
}

func TestPrompt_EnterEmitsPaths(t *testing.T) {
	p := NewPrompt(nil)
	p.Open()
	typeText(p, "a.txt, b.txt")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.AddFilesRequested{Paths: []string{"a.txt", "b.txt"}}, cmd())
}

func TestPrompt_EmptyInputIsRejected(t *testing.T) {
	p := NewPrompt(nil)
	p.Open()
	typeText(p, " , ")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, p.Err(), domain.ErrInvalidInput)
	assert.Contains(t, p.View(), "Enter at least one path")
}

func TestPrompt_OpenClearsState(t *testing.T) {
	p := NewPrompt(nil)
	p.Open()
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, p.Err())

	p.Open()

	assert.NoError(t, p.Err())
}

func TestPrompt_EscCancels(t *testing.T) {
	p := NewPrompt(nil)
	p.Open()

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.FocusChanged{Focus: messages.FocusTable}, cmd())
}

func TestParsePaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"blanks", " , ,", nil},
		{"single", "notes.txt", []string{"notes.txt"}},
		{"trimmed", " a.txt ,b.txt ", []string{"a.txt", "b.txt"}},
		{"file uri", "file:///tmp/a.txt", []string{"/tmp/a.txt"}},
		{"home", "~/docs/a.md", []string{filepath.Join(home, "docs/a.md")}},
		{"tilde inside", "a~/b", []string{"a~/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePaths(tt.value))
		})
	}
}
