// Package plaintext provides the fallback Normaliser for text documents.
package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/markdown",
		"text/x-markdown",
		"text/yaml",
		"text/toml",
		"text/css",
		"text/html",
		"text/xml",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "")

// Normalise unifies line endings, drops NUL bytes and trailing spaces on each line.
func (n *Normaliser) Normalise(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lines := strings.Split(lineEndings.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}
