// Package glob picks source documents by expanding glob patterns.
// It stands in for a native file dialog in a terminal.
package glob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Picker implements the interface.
var _ driven.FilePicker = (*Picker)(nil)

// DefaultPattern is expanded inside the inbox directory when no pattern is configured.
const DefaultPattern = "*.txt"

// Picker returns the regular files matching its patterns, sorted and deduplicated.
// No match is reported as a cancel.
type Picker struct {
	patterns []string
}

// New creates a picker over patterns.
func New(patterns ...string) *Picker {
	return &Picker{patterns: patterns}
}

// ForInbox returns a picker for pattern, or DefaultPattern inside dir when pattern is empty.
func ForInbox(dir, pattern string) *Picker {
	if pattern == "" {
		pattern = filepath.Join(dir, DefaultPattern)
	}
	return New(pattern)
}

// Pick expands the patterns.
func (p *Picker) Pick(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range p.patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Patterns returns the configured patterns.
func (p *Picker) Patterns() []string {
	return p.patterns
}
