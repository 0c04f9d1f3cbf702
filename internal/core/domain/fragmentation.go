package domain

import (
	"fmt"
	"strings"
)

// FragmentationMode selects how the engine splits texts.
// The string values are the engine's wire values.
type FragmentationMode string

// Available fragmentation modes.
const (
	// ModeByWordCount packs whole sentences up to a target word count.
	ModeByWordCount FragmentationMode = "size"

	// ModeByLine emits every non-blank line as its own fragment.
	ModeByLine FragmentationMode = "row"
)

// IsValid returns true if the mode is recognised.
func (m FragmentationMode) IsValid() bool {
	switch m {
	case ModeByWordCount, ModeByLine:
		return true
	default:
		return false
	}
}

// UsesTarget returns true if target and tolerance are meaningful for the mode.
func (m FragmentationMode) UsesTarget() bool {
	return m == ModeByWordCount
}

// String returns the string representation.
func (m FragmentationMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m FragmentationMode) Description() string {
	switch m {
	case ModeByWordCount:
		return "By word count"
	case ModeByLine:
		return "By line"
	default:
		return "Unknown"
	}
}

// ParseFragmentationMode accepts wire values and a few readable aliases.
func ParseFragmentationMode(s string) (FragmentationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "size", "word", "words", "bywordcount":
		return ModeByWordCount, nil
	case "row", "line", "lines", "byline":
		return ModeByLine, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

// FragmentationRequest is one fragmentation job as configured by the user.
type FragmentationRequest struct {
	// SelectedIDs are the source fragments to split. Must be non-empty.
	SelectedIDs []string

	// Mode selects the splitting policy.
	Mode FragmentationMode

	// TargetWordCount must be positive in ModeByWordCount.
	TargetWordCount int

	// Tolerance is the accepted deviation from TargetWordCount; must be >= 0.
	// Target 50 with tolerance 20 accepts sizes in [30, 70].
	Tolerance int
}

// Validate checks the request locally, before any engine call.
// Every failure matches ErrInvalidConfiguration; an empty selection also matches ErrNoSelection.
func (r FragmentationRequest) Validate() error {
	if len(r.SelectedIDs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrNoSelection)
	}
	if !r.Mode.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfiguration, ErrUnsupportedMode, r.Mode)
	}
	if r.Mode.UsesTarget() {
		if r.TargetWordCount <= 0 {
			return fmt.Errorf("%w: target word count must be positive, got %d",
				ErrInvalidConfiguration, r.TargetWordCount)
		}
		if r.Tolerance < 0 {
			return fmt.Errorf("%w: tolerance must not be negative, got %d",
				ErrInvalidConfiguration, r.Tolerance)
		}
	}
	return nil
}

// Bounds returns the accepted word-count band [target-tolerance, target+tolerance].
func (r FragmentationRequest) Bounds() (lower, upper int) {
	return r.TargetWordCount - r.Tolerance, r.TargetWordCount + r.Tolerance
}
