package splitters

import (
	"github.com/custodia-labs/datalex/internal/splitters/line"
	"github.com/custodia-labs/datalex/internal/splitters/sentence"
)

// RegisterDefaults registers the built-in splitters with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(sentence.New())
	r.Register(line.New())
}

// Default returns a registry holding the built-in splitters.
func Default() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
