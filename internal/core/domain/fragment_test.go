package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentRecord_Label(t *testing.T) {
	assert.Equal(t, "notes.txt", FragmentRecord{ID: "f-1", DisplayName: "notes.txt"}.Label())
	assert.Equal(t, "f-1", FragmentRecord{ID: "f-1"}.Label())
}

func TestFragmentationOutcome_WireFormat(t *testing.T) {
	raw := `[{"text":"One.","is_successful":true,"word_count":1},{"text":"Two words.","is_successful":false,"word_count":2}]`

	var outcomes []FragmentationOutcome
	require.NoError(t, json.Unmarshal([]byte(raw), &outcomes))
	require.Len(t, outcomes, 2)
	assert.Equal(t, "One.", outcomes[0].Text)
	assert.True(t, outcomes[0].IsSuccessful)
	assert.False(t, outcomes[1].IsSuccessful)
	assert.Equal(t, 2, outcomes[1].WordCount)
}

func TestSummarizeOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []FragmentationOutcome
		want     JobSummary
	}{
		{name: "empty", outcomes: nil, want: JobSummary{}},
		{
			name: "all successful",
			outcomes: []FragmentationOutcome{
				{IsSuccessful: true}, {IsSuccessful: true},
			},
			want: JobSummary{Total: 2},
		},
		{
			name: "mixed",
			outcomes: []FragmentationOutcome{
				{IsSuccessful: true}, {IsSuccessful: false}, {IsSuccessful: false},
			},
			want: JobSummary{Total: 3, Failed: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeOutcomes(tt.outcomes)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Total-tt.want.Failed, got.Succeeded())
		})
	}
}
