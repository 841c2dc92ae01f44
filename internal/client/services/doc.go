// Package services implements the synchronisation policy between the local
// SQLite cache and the remote API.
//
// The policy differs per operation kind:
//
//   - List reads (ProductService.Watch, UserService.WatchAll) are
//     cache-first: the local result is emitted at once, the remote collection
//     is fetched and reconciled into the store, and the reconciled result is
//     emitted. A failed refresh is soft: it is logged and reported in
//     live.Update.SyncErr, never as a failure of the read. With nothing cached
//     the result is simply empty.
//   - Point reads (ProductService.Get, UserService.Sync) are read-through:
//     remote first, cached on success, falling back to the cached row when the
//     remote call fails, and failing only when there is nothing cached.
//   - Writes (register, update, delete) are remote-first and fail hard: any
//     remote error aborts before the local store is touched; on success the
//     canonical remote record is mirrored locally.
//
// A full refresh replaces the whole local collection in one transaction so
// rows deleted server-side disappear; a scoped refresh (category, search)
// only upserts what it received, because the scope is not the whole dataset.
package services
