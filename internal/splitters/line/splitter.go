// Package line emits every non-blank line as its own fragment.
package line

import (
	"context"
	"strings"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// Splitter implements the row mode. Target and tolerance are ignored and
// every produced fragment is successful.
type Splitter struct{}

// New creates a line splitter.
func New() *Splitter {
	return &Splitter{}
}

// Mode returns domain.ModeByLine.
func (s *Splitter) Mode() domain.FragmentationMode {
	return domain.ModeByLine
}

// Split returns the trimmed non-blank lines of text. Lines end at "\n",
// "\r\n" or a lone "\r".
func (s *Splitter) Split(ctx context.Context, text string, _ driven.SplitOptions) ([]domain.FragmentationOutcome, error) {
	var out []domain.FragmentationOutcome

	for text != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := strings.IndexAny(text, "\r\n")
		var line string
		if end < 0 {
			line, text = text, ""
		} else {
			line = text[:end]
			next := end + 1
			if text[end] == '\r' && next < len(text) && text[next] == '\n' {
				next++
			}
			text = text[next:]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, domain.FragmentationOutcome{
			Text:         line,
			IsSuccessful: true,
			WordCount:    len(strings.Fields(line)),
		})
	}

	return out, nil
}
