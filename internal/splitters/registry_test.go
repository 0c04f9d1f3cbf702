package splitters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

type stubSplitter struct {
	mode domain.FragmentationMode
}

func (s stubSplitter) Mode() domain.FragmentationMode { return s.mode }
func (s stubSplitter) Split(context.Context, string, driven.SplitOptions) ([]domain.FragmentationOutcome, error) {
	return nil, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Empty(t, r.Modes())
	_, err := r.Get(domain.ModeByLine)
	assert.ErrorContains(t, err, "available: none")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(stubSplitter{mode: domain.ModeByLine})

	s, err := r.Get(domain.ModeByLine)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeByLine, s.Mode())
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := Default().Get("paragraph")

	assert.ErrorIs(t, err, domain.ErrUnsupportedMode)
	assert.ErrorContains(t, err, "available: row, size")
}

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, []domain.FragmentationMode{domain.ModeByLine, domain.ModeByWordCount}, r.Modes())
}
