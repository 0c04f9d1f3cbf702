package driven

import "context"

// Normaliser turns a decoded document in one format into plain text.
// Each normaliser handles specific MIME types (e.g. Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format normalisers return 50-89, fallbacks 1-9.
	Priority() int

	// Normalise returns the readable text of content.
	Normalise(ctx context.Context, content string) (string, error)
}
