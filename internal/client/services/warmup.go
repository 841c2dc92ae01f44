package services

import (
	"context"

	"github.com/dmitrijs2005/gamezone/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Warmup refreshes the user and product caches concurrently. Failures are
// logged and otherwise ignored; it returns early only if ctx is cancelled.
func Warmup(ctx context.Context, us UserService, ps ProductService, log logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := us.RefreshAll(gctx); err != nil {
			log.Warn(gctx, "user warm-up failed", "err", err)
		}
		return gctx.Err()
	})
	g.Go(func() error {
		if err := ps.Refresh(gctx, AllProducts()); err != nil {
			log.Warn(gctx, "product warm-up failed", "err", err)
		}
		return gctx.Err()
	})
	return g.Wait()
}
