package domain

// Snapshot is the tuple of records, page index and page count held by the store.
// It is always replaced as a whole so observers never see a torn state.
type Snapshot struct {
	// Records are the fragments on the current page.
	Records []FragmentRecord

	// CurrentPage is zero-based.
	CurrentPage int

	// TotalPages is supplied by the engine and may be zero.
	TotalPages int
}

// IDs returns the ids of the records on the page, in page order.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.Records))
	for i := range s.Records {
		ids[i] = s.Records[i].ID
	}
	return ids
}

// IndexOf returns the page position of the record with the given id, or -1.
func (s Snapshot) IndexOf(id string) int {
	for i := range s.Records {
		if s.Records[i].ID == id {
			return i
		}
	}
	return -1
}

// Boundary derives the pagination state from the snapshot counters.
func (s Snapshot) Boundary() PageBoundary {
	return BoundaryFor(s.CurrentPage, s.TotalPages)
}

// OpenFragment is the slot holding the fragment opened for reading.
type OpenFragment struct {
	// ID is empty when nothing is open.
	ID string

	// Record carries the opened fragment with its content resident.
	Record FragmentRecord
}

// IsEmpty reports whether no fragment is open.
func (o OpenFragment) IsEmpty() bool {
	return o.ID == ""
}

// Content returns the full text of the open fragment.
func (o OpenFragment) Content() string {
	return o.Record.Content
}

// WorkspaceView is the single state aggregate presentation renders from.
type WorkspaceView struct {
	Snapshot Snapshot
	Open     OpenFragment
	Selected []string
}

// IsSelected reports whether id is part of the selection.
func (v WorkspaceView) IsSelected(id string) bool {
	for _, s := range v.Selected {
		if s == id {
			return true
		}
	}
	return false
}

// PageBoundary is the pagination state derived from (currentPage, totalPages).
type PageBoundary int

const (
	// BoundarySingle means there is at most one page; both transitions are disabled.
	BoundarySingle PageBoundary = iota
	// BoundaryAtStart disables the previous transition.
	BoundaryAtStart
	// BoundaryMiddle enables both transitions.
	BoundaryMiddle
	// BoundaryAtEnd disables the next transition.
	BoundaryAtEnd
)

// BoundaryFor derives the boundary for a page index and page count.
func BoundaryFor(currentPage, totalPages int) PageBoundary {
	switch {
	case totalPages <= 1:
		return BoundarySingle
	case currentPage <= 0:
		return BoundaryAtStart
	case currentPage >= totalPages-1:
		return BoundaryAtEnd
	default:
		return BoundaryMiddle
	}
}

// CanPrevious reports whether the previous transition is enabled.
func (b PageBoundary) CanPrevious() bool {
	return b == BoundaryMiddle || b == BoundaryAtEnd
}

// CanNext reports whether the next transition is enabled.
func (b PageBoundary) CanNext() bool {
	return b == BoundaryMiddle || b == BoundaryAtStart
}

// String returns the string representation of the boundary.
func (b PageBoundary) String() string {
	switch b {
	case BoundarySingle:
		return "single"
	case BoundaryAtStart:
		return "at_start"
	case BoundaryMiddle:
		return "middle"
	case BoundaryAtEnd:
		return "at_end"
	default:
		return "unknown"
	}
}
