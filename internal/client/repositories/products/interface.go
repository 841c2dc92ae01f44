package products

import (
	"context"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
)

// Repository is the local product cache. Its content can be dropped and
// rebuilt from the remote catalogue at any time.
type Repository interface {
	// Insert stores p, replacing any row with the same id.
	Insert(ctx context.Context, p models.Product) error

	// InsertMany upserts every product in one transaction.
	InsertMany(ctx context.Context, list []models.Product) error

	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, p models.Product) error

	// GetByID returns (nil, nil) when the product is not cached.
	GetByID(ctx context.Context, id int64) (*models.Product, error)

	// GetAll returns every cached product ordered by id.
	GetAll(ctx context.Context) ([]models.Product, error)

	// GetByCategory matches the category exactly.
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)

	// SearchByName matches a case-insensitive substring of the name.
	SearchByName(ctx context.Context, term string) ([]models.Product, error)

	DeleteAll(ctx context.Context) error

	// ReplaceAll atomically swaps the whole cache for list.
	ReplaceAll(ctx context.Context, list []models.Product) error

	Notifier() *live.Notifier
}
