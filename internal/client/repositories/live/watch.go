package live

import "context"

// Query loads the current result of a local read.
type Query[T any] func(ctx context.Context) ([]T, error)

// Update is one emission of a synchronised list read.
type Update[T any] struct {
	Items []T

	// Synced is false for the cache-only emission that precedes the remote
	// refresh and true for every emission after the refresh has finished.
	Synced bool

	// SyncErr is the soft failure of the remote refresh, if any. It never
	// means Items is unusable.
	SyncErr error
}

// Watch emits the result of q immediately and again after every signal from
// n, until ctx is done; then the channel is closed. When q fails, onErr (if
// not nil) receives the error and nothing is emitted for that run.
func Watch[T any](ctx context.Context, n *Notifier, q Query[T], onErr func(error)) <-chan []T {
	out := make(chan []T)
	changes, cancel := n.Subscribe()

	go func() {
		defer close(out)
		defer cancel()

		for {
			items, err := q(ctx)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				if onErr != nil {
					onErr(err)
				}
			default:
				select {
				case out <- items:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
