// Package splitters holds the fragmentation algorithms the local engine runs,
// keyed by fragmentation mode.
package splitters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Registry maps fragmentation modes to their splitters.
type Registry struct {
	splitters map[domain.FragmentationMode]driven.Splitter
}

// NewRegistry creates an empty splitter registry.
func NewRegistry() *Registry {
	return &Registry{
		splitters: make(map[domain.FragmentationMode]driven.Splitter),
	}
}

// Register adds a splitter under its own mode, replacing any previous one.
func (r *Registry) Register(s driven.Splitter) {
	r.splitters[s.Mode()] = s
}

// Get returns the splitter for mode.
// Returns ErrUnsupportedMode if nothing is registered for it.
func (r *Registry) Get(mode domain.FragmentationMode) (driven.Splitter, error) {
	s, ok := r.splitters[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnsupportedMode, mode, r.modeList())
	}
	return s, nil
}

// Modes returns the registered modes in sorted order.
func (r *Registry) Modes() []domain.FragmentationMode {
	modes := make([]domain.FragmentationMode, 0, len(r.splitters))
	for m := range r.splitters {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

func (r *Registry) modeList() string {
	modes := r.Modes()
	if len(modes) == 0 {
		return "none"
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
