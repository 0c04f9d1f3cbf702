// Package sentence packs whole sentences into fragments of a target word count.
package sentence

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// Splitter implements the size mode.
//
// Sentences end at '.', '!' or '?' followed by whitespace. Sentences are added
// to the current fragment while it stays within target+tolerance words;
// otherwise the fragment is emitted and a new one starts with that sentence.
// A fragment is successful when its word count lies in
// [target-tolerance, target+tolerance]. A single sentence longer than the
// upper bound becomes its own unsuccessful fragment.
type Splitter struct{}

// New creates a sentence splitter.
func New() *Splitter {
	return &Splitter{}
}

// Mode returns domain.ModeByWordCount.
func (s *Splitter) Mode() domain.FragmentationMode {
	return domain.ModeByWordCount
}

// Split packs the sentences of text into fragments.
func (s *Splitter) Split(ctx context.Context, text string, opts driven.SplitOptions) ([]domain.FragmentationOutcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	lower := opts.Target - opts.Tolerance
	upper := opts.Target + opts.Tolerance

	var (
		out    []domain.FragmentationOutcome
		buffer []string
		words  int
	)
	emit := func() {
		if len(buffer) == 0 {
			return
		}
		out = append(out, domain.FragmentationOutcome{
			Text:         strings.Join(buffer, " "),
			IsSuccessful: words >= lower && words <= upper,
			WordCount:    words,
		})
	}

	for _, sentence := range Sentences(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := len(strings.Fields(sentence))
		if words+n <= upper {
			buffer = append(buffer, sentence)
			words += n
			continue
		}
		emit()
		buffer = []string{sentence}
		words = n
	}
	emit()

	return out, nil
}

// Sentences splits text at whitespace runs that follow '.', '!' or '?'.
// The terminator stays with its sentence and the whitespace is dropped.
func Sentences(text string) []string {
	var (
		out   []string
		start int
		prev  rune
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && isTerminator(prev) {
			out = append(out, text[start:i])
			j := i + size
			for j < len(text) {
				next, nextSize := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(next) {
					break
				}
				j += nextSize
			}
			start = j
			i = j
			prev = 0
			continue
		}
		prev = r
		i += size
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
