// Package users is the local SQLite store of GameZone accounts.
//
// Rows live in the "usuarios" table. Interests are stored as a JSON array
// string and the password only as its argon2id hash. Every successful
// mutation fires the repository's live.Notifier so that open queries
// (see live.Watch) refresh.
//
// Typical usage:
//
//	repo := users.NewSQLiteRepository(db)
//	id, _ := repo.Insert(ctx, u)
//	u2, _ := repo.GetByEmail(ctx, "ana@gamezone.cl")
//	_ = repo.ReplaceAll(ctx, fromServer)
package users
