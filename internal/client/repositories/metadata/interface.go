// Package metadata is a small key/value store for client-wide settings kept
// next to the cached entities.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear drops every stored setting.
	Clear(ctx context.Context) error

	// GetBool returns def when key is absent.
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	SetBool(ctx context.Context, key string, v bool) error
}
