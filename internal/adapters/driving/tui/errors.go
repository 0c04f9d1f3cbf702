package tui

import "errors"

// ErrMissingFragmentStore is returned when the fragment store is not provided.
var ErrMissingFragmentStore = errors.New("tui: fragment store is required")

// ErrMissingPaginator is returned when the paginator is not provided.
var ErrMissingPaginator = errors.New("tui: paginator is required")

// ErrMissingJobController is returned when the fragmentation job controller is not provided.
var ErrMissingJobController = errors.New("tui: fragmentation job controller is required")
