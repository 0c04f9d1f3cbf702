package domain

const unknownDescription = "Unknown"

// SelectionPolicy decides what happens to the selection when the page changes.
type SelectionPolicy string

// Available selection policies.
const (
	// SelectionClearOnPageChange empties the selection on every page change.
	SelectionClearOnPageChange SelectionPolicy = "clear_on_page_change"

	// SelectionPersistAcrossPages keeps selected ids across page changes.
	SelectionPersistAcrossPages SelectionPolicy = "persist_across_pages"
)

// IsValid returns true if the selection policy is recognised.
func (p SelectionPolicy) IsValid() bool {
	switch p {
	case SelectionClearOnPageChange, SelectionPersistAcrossPages:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p SelectionPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p SelectionPolicy) Description() string {
	switch p {
	case SelectionClearOnPageChange:
		return "Clear selection on page change"
	case SelectionPersistAcrossPages:
		return "Keep selection across pages"
	default:
		return unknownDescription
	}
}

// PaginationSettings holds engine paging configuration.
type PaginationSettings struct {
	// PageSize is the number of records per engine page.
	PageSize int
}

// SelectionSettings holds selection behaviour configuration.
type SelectionSettings struct {
	// Policy decides selection scope across pages.
	Policy SelectionPolicy
}

// FragmentationSettings holds the defaults offered by the fragmentation dialog.
type FragmentationSettings struct {
	// Mode is the default splitting mode.
	Mode FragmentationMode

	// Target is the default target word count.
	Target int

	// Tolerance is the default tolerance.
	Tolerance int
}

// EngineSettings holds local engine configuration.
type EngineSettings struct {
	// Workers bounds how many texts are split concurrently.
	Workers int

	// Inbox is the glob pattern the file picker expands.
	Inbox string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Pagination    PaginationSettings
	Selection     SelectionSettings
	Fragmentation FragmentationSettings
	Engine        EngineSettings
}

// Default values.
const (
	DefaultPageSize  = 100
	DefaultTarget    = 50
	DefaultTolerance = 20
	DefaultWorkers   = 8
)

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pagination: PaginationSettings{PageSize: DefaultPageSize},
		Selection:  SelectionSettings{Policy: SelectionClearOnPageChange},
		Fragmentation: FragmentationSettings{
			Mode:      ModeByWordCount,
			Target:    DefaultTarget,
			Tolerance: DefaultTolerance,
		},
		Engine: EngineSettings{Workers: DefaultWorkers},
	}
}

// Validate checks settings for values the application cannot run with.
func (s AppSettings) Validate() error {
	switch {
	case s.Pagination.PageSize <= 0:
		return ErrInvalidInput
	case !s.Selection.Policy.IsValid():
		return ErrInvalidInput
	case !s.Fragmentation.Mode.IsValid():
		return ErrUnsupportedMode
	case s.Fragmentation.Target <= 0, s.Fragmentation.Tolerance < 0:
		return ErrInvalidInput
	case s.Engine.Workers <= 0:
		return ErrInvalidInput
	}
	return nil
}
