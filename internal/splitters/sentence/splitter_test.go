package sentence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

func TestSplitter_Mode(t *testing.T) {
	if New().Mode() != domain.ModeByWordCount {
		t.Errorf("expected mode %q, got %q", domain.ModeByWordCount, New().Mode())
	}
}

func TestSplitter_PacksSentencesUpToUpperBound(t *testing.T) {
	text := "One two three. Four five! Six seven eight nine? Ten."

	got, err := New().Split(context.Background(), text, driven.SplitOptions{Target: 4, Tolerance: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.FragmentationOutcome{
		{Text: "One two three. Four five!", IsSuccessful: true, WordCount: 5},
		{Text: "Six seven eight nine? Ten.", IsSuccessful: true, WordCount: 5},
	}, got)
}

func TestSplitter_OversizedSentenceIsUnsuccessful(t *testing.T) {
	text := "a b c d e f g. h i."

	got, err := New().Split(context.Background(), text, driven.SplitOptions{Target: 2, Tolerance: 1})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].WordCount)
	assert.False(t, got[0].IsSuccessful)
	assert.Equal(t, "h i.", got[1].Text)
	assert.True(t, got[1].IsSuccessful)
}

func TestSplitter_ShortTailIsUnsuccessful(t *testing.T) {
	text := "one two three four five. six."

	got, err := New().Split(context.Background(), text, driven.SplitOptions{Target: 5, Tolerance: 0})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSuccessful)
	assert.False(t, got[1].IsSuccessful)
	assert.Equal(t, 1, got[1].WordCount)
}

func TestSplitter_SuccessfulFragmentsWithinBand(t *testing.T) {
	text := "Alpha beta gamma delta. Epsilon zeta eta. Theta iota kappa lambda mu. " +
		"Nu xi omicron. Pi rho sigma tau upsilon phi. Chi psi omega."
	opts := driven.SplitOptions{Target: 6, Tolerance: 2}

	got, err := New().Split(context.Background(), text, opts)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, o := range got {
		if o.IsSuccessful {
			assert.GreaterOrEqual(t, o.WordCount, opts.Target-opts.Tolerance)
			assert.LessOrEqual(t, o.WordCount, opts.Target+opts.Tolerance)
		}
	}
}

func TestSplitter_EmptyText(t *testing.T) {
	got, err := New().Split(context.Background(), "   \n ", driven.SplitOptions{Target: 5, Tolerance: 1})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Split(ctx, "One. Two.", driven.SplitOptions{Target: 5, Tolerance: 1})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"terminators", "Hi.  There!\nOk? yes", []string{"Hi.", "There!", "Ok?", "yes"}},
		{"decimal stays", "It costs 3.5 euros. Cheap.", []string{"It costs 3.5 euros.", "Cheap."}},
		{"ellipsis", "Wait... what", []string{"Wait...", "what"}},
		{"no terminator", "just words here", []string{"just words here"}},
		{"cyrillic", "Привет мир. Как дела?", []string{"Привет мир.", "Как дела?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.in))
		})
	}
}
