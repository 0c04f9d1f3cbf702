package driven

import "context"

// DocumentReader reads a source document as text.
type DocumentReader interface {
	// Read returns the document text at path.
	Read(ctx context.Context, path string) (string, error)
}

// FilePicker chooses source documents for ingestion.
type FilePicker interface {
	// Pick returns the chosen paths. An empty result means the user cancelled.
	Pick(ctx context.Context) ([]string, error)
}
