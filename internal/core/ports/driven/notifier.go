package driven

import "context"

// ChangeNotifier reports that engine state changed outside this process.
type ChangeNotifier interface {
	// Watch returns a channel that receives a value per coalesced change.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
