package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEngineUnavailable indicates the engine boundary is not initialised or reachable.
	// Every operation becomes a no-op; the user is told to restart.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrInvalidConfiguration indicates local validation failed before any engine call.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoSelection indicates a batch operation was attempted with zero selected ids.
	ErrNoSelection = errors.New("no fragments selected")

	// ErrJobInFlight indicates a fragmentation job is already running.
	ErrJobInFlight = errors.New("fragmentation job already running")

	// Engine call failures.

	// ErrFetchFailed indicates the engine failed to return page data or fragment content.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrJobFailed indicates the engine failed to run a fragmentation job.
	ErrJobFailed = errors.New("fragmentation job failed")

	// ErrLoadFailed indicates the engine failed to ingest source documents.
	ErrLoadFailed = errors.New("load failed")

	// ErrDeleteFailed indicates the engine failed to delete fragments.
	ErrDeleteFailed = errors.New("delete failed")

	// Engine-side errors.

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPageOutOfRange indicates a page index outside [0, totalPages).
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnsupportedMode indicates an unknown fragmentation mode.
	ErrUnsupportedMode = errors.New("unsupported fragmentation mode")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
