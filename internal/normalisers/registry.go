package normalisers

import (
	"context"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/normalisers/html"
	"github.com/custodia-labs/datalex/internal/normalisers/markdown"
	"github.com/custodia-labs/datalex/internal/normalisers/plaintext"
)

// Extensions the platform mime table does not always know.
var extraTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".text":     "text/plain",
	".log":      "text/plain",
	".htm":      "text/html",
	".html":     "text/html",
	".xhtml":    "application/xhtml+xml",
}

// Registry dispatches documents to the highest-priority normaliser for their MIME type.
type Registry struct {
	byType map[string][]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string][]driven.Normaliser)}
}

// Default returns a registry with the markdown, HTML and plaintext normalisers.
func Default() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(plaintext.New())
	return r
}

// Register adds n under each of its MIME types.
func (r *Registry) Register(n driven.Normaliser) {
	for _, t := range n.SupportedMIMETypes() {
		list := append(r.byType[t], n)
		sort.SliceStable(list, func(i, j int) bool { return list[i].Priority() > list[j].Priority() })
		r.byType[t] = list
	}
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// For returns the normaliser for path, or nil when its type is not registered.
func (r *Registry) For(path string) driven.Normaliser {
	list := r.byType[TypeByPath(path)]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// Normalise runs the normaliser chosen for path over content.
// Content with no matching normaliser is returned unchanged.
func (r *Registry) Normalise(ctx context.Context, path, content string) (string, error) {
	n := r.For(path)
	if n == nil {
		return content, nil
	}
	return n.Normalise(ctx, content)
}

// TypeByPath returns the MIME type of path without parameters, or "" if unknown.
func TypeByPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extraTypes[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
