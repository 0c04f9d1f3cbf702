// Package html provides a Normaliser for HTML documents.
// It extracts readable text, stripping tags, scripts and styles and
// decoding entities.
package html
