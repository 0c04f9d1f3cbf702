// Package normalisers selects the normaliser that turns a document into
// plain text before it becomes a fragment. Each normaliser knows one family
// of MIME types; the registry picks by file extension and priority.
package normalisers
