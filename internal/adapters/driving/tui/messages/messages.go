// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// Focus identifies which part of the window receives keys.
type Focus int

const (
	// FocusTable is the fragment table.
	FocusTable Focus = iota
	// FocusContent is the content viewer of the open fragment.
	FocusContent
	// FocusFragmentation is the fragmentation dialog.
	FocusFragmentation
	// FocusAddFiles is the add-paths prompt.
	FocusAddFiles
	// FocusHelp is the key reference.
	FocusHelp
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusTable:
		return "table"
	case FocusContent:
		return "content"
	case FocusFragmentation:
		return "fragmentation"
	case FocusAddFiles:
		return "add_files"
	case FocusHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FocusChanged is sent when a view hands focus to another part of the window.
type FocusChanged struct {
	Focus Focus
}

// WorkspaceRefreshed signals a refresh finished. The new state is read from the store.
type WorkspaceRefreshed struct {
	Err error
}

// FragmentOpened signals the open slot was (re)loaded.
type FragmentOpened struct {
	Index int
	Err   error
}

// PageChanged signals a page transition finished.
// Accepted is false when the target page was out of range.
type PageChanged struct {
	Accepted bool
	Err      error
}

// AddFilesRequested carries paths typed into the add-files prompt.
type AddFilesRequested struct {
	Paths []string
}

// FilesAdded signals ingestion finished. Count is zero when the picker was cancelled.
type FilesAdded struct {
	Count int
	Err   error
}

// FragmentsDeleted signals a delete finished.
type FragmentsDeleted struct {
	Count int
	Err   error
}

// FragmentationRequested carries a request confirmed in the dialog.
type FragmentationRequested struct {
	Request domain.FragmentationRequest
}

// FragmentationFinished carries the job result.
type FragmentationFinished struct {
	Summary domain.JobSummary
	Err     error
}

// ExternalChange signals the engine state changed outside this process.
type ExternalChange struct{}

// WorkspacePublished signals the store published a new view.
type WorkspacePublished struct{}

// WatchStopped signals the change feed closed.
type WatchStopped struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
