package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gamezone/internal/client/migrations"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/products"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/users"
	"github.com/dmitrijs2005/gamezone/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories bundles the local stores opened over one database.
type Repositories struct {
	DB       *sql.DB
	Users    *users.SQLiteRepository
	Products *products.SQLiteRepository
	Metadata *metadata.SQLiteRepository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite database at dsn and
// brings its schema up to date. SQLite serialises writers anyway, so the
// pool is limited to one connection; this also keeps ":memory:" databases
// on a single handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenRepositories initialises the database at dsn and wires the stores.
func OpenRepositories(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewRepositories(db), nil
}

// NewRepositories wires the stores over an already migrated db.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Users:    users.NewSQLiteRepository(db),
		Products: products.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
