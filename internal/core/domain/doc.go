// Package domain defines the core business entities for DataLex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FragmentRecord: One fragment of a source document and its metadata
//   - FragmentationOutcome: One produced piece reported by a fragmentation job
//   - Snapshot: The atomically replaced page of records plus page counters
//   - WorkspaceView: Snapshot, open content and selection observed together
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
