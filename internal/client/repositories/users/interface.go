package users

import (
	"context"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
)

// Repository is the local store of users.
type Repository interface {
	// Insert stores u and returns its id. A row with the same id (or email)
	// is replaced entirely. A zero ID lets the store assign one.
	Insert(ctx context.Context, u models.User) (int64, error)

	// Update overwrites the row with u.ID. Missing rows are ignored.
	Update(ctx context.Context, u models.User) error

	// Delete removes the row with u.ID. Missing rows are ignored.
	Delete(ctx context.Context, u models.User) error

	// GetByID returns (nil, nil) when there is no such user.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail returns (nil, nil) when there is no such user.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetAll returns every user ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)

	DeleteAll(ctx context.Context) error

	// ReplaceAll atomically swaps the whole table for list.
	ReplaceAll(ctx context.Context, list []models.User) error

	EmailExists(ctx context.Context, email string) (bool, error)

	// Notifier fires after every successful mutation.
	Notifier() *live.Notifier
}
