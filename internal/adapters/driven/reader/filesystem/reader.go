// Package filesystem reads source documents from local disk.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

// DefaultMaxSize is the largest document read, in bytes.
const DefaultMaxSize = 64 << 20

// Reader reads text documents. A UTF-8 or UTF-16 byte order mark selects
// the encoding; without one the content is read as UTF-8 and invalid
// bytes become U+FFFD.
type Reader struct {
	maxSize     int64
	normalisers Normalisers
}

// Normalisers turns the decoded content of path into plain text.
type Normalisers interface {
	Normalise(ctx context.Context, path, content string) (string, error)
}

// Option configures the reader.
type Option func(*Reader)

// WithMaxSize sets the largest document read, in bytes.
func WithMaxSize(n int64) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// WithNormalisers cleans documents by format after decoding.
func WithNormalisers(n Normalisers) Option {
	return func(r *Reader) {
		r.normalisers = n
	}
}

// New creates a filesystem reader.
func New(opts ...Option) *Reader {
	r := &Reader{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the text of the document at path, normalised when a
// registry is configured.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > r.maxSize {
		return "", fmt.Errorf("%w: %s is %d bytes, limit is %d", domain.ErrInvalidInput, path, info.Size(), r.maxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	if r.normalisers == nil {
		return string(data), nil
	}

	text, err := r.normalisers.Normalise(ctx, path, string(data))
	if err != nil {
		return "", fmt.Errorf("normalise %s: %w", path, err)
	}
	return text, nil
}
