package live

import "context"

// Sync streams a list read that is refreshed from a remote source once:
//
//  1. the local result of q, with Synced=false;
//  2. refresh runs (it is expected to write into the store);
//  3. the local result again, with Synced=true and SyncErr set to whatever
//     refresh returned;
//  4. a new local result after every signal from n until ctx is done.
//
// A failing q is reported to onErr and the previous result (initially
// empty) is emitted instead, so the stream never stalls on a broken store.
// The channel is closed when ctx is done.
func Sync[T any](ctx context.Context, n *Notifier, q Query[T], refresh func(context.Context) error, onErr func(error)) <-chan Update[T] {
	out := make(chan Update[T])
	changes, cancel := n.Subscribe()

	go func() {
		defer close(out)
		defer cancel()

		last := []T{}
		load := func() {
			items, err := q(ctx)
			if err != nil {
				if onErr != nil && ctx.Err() == nil {
					onErr(err)
				}
				return
			}
			last = items
		}
		send := func(u Update[T]) bool {
			select {
			case out <- u:
				return true
			case <-ctx.Done():
				return false
			}
		}

		load()
		if !send(Update[T]{Items: last}) {
			return
		}

		syncErr := refresh(ctx)
		if ctx.Err() != nil {
			return
		}

		// the refresh's own write is covered by the reload below
		select {
		case <-changes:
		default:
		}

		load()
		if !send(Update[T]{Items: last, Synced: true, SyncErr: syncErr}) {
			return
		}

		for {
			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
			load()
			if !send(Update[T]{Items: last, Synced: true, SyncErr: syncErr}) {
				return
			}
		}
	}()

	return out
}
