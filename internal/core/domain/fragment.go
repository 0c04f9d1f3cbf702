package domain

// FragmentRecord describes one fragment and its metadata.
// Records are values; holders replace them rather than mutate them.
type FragmentRecord struct {
	// ID is assigned by the engine at creation time and is stable
	// across pagination and reloads.
	ID string `json:"id"`

	// SourcePath is the originating document path (display only).
	SourcePath string `json:"filePath"`

	// Content is the full fragment text. It is only guaranteed to be
	// resident for the fragment currently opened.
	Content string `json:"content"`

	// WordCount is derived by the engine and never recomputed locally.
	WordCount int `json:"wordCount"`

	// DisplayName is a human-readable label derived from source and ordinal.
	DisplayName string `json:"displayName"`
}

// Label returns the display name, falling back to the ID.
func (r FragmentRecord) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.ID
}

// FragmentationOutcome is one piece produced by a fragmentation job.
// It is consumed to build a JobSummary and then discarded.
type FragmentationOutcome struct {
	// Text echoes the produced content; the engine may truncate it.
	Text string `json:"text"`

	// IsSuccessful is false when the piece could not satisfy the
	// size constraint. Such pieces still count towards totals.
	IsSuccessful bool `json:"is_successful"`

	// WordCount is the word count of the produced piece.
	WordCount int `json:"word_count"`
}

// JobSummary is the (total, failed) pair surfaced after a fragmentation job.
type JobSummary struct {
	Total  int
	Failed int
}

// Succeeded returns the number of successful pieces.
func (s JobSummary) Succeeded() int {
	return s.Total - s.Failed
}

// SummarizeOutcomes counts all outcomes and the unsuccessful ones.
func SummarizeOutcomes(outcomes []FragmentationOutcome) JobSummary {
	summary := JobSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		if !o.IsSuccessful {
			summary.Failed++
		}
	}
	return summary
}
