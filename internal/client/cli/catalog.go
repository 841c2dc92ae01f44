package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/services"
	"github.com/dmitrijs2005/gamezone/internal/client/state"
)

var errBadID = errors.New("invalid product id")

// listAndWait runs a listing action and blocks until it has synced.
func (a *App) listAndWait(ctx context.Context, action func()) (state.ProductsState, error) {
	action()

	sub, cancel := a.catalog.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return state.ProductsState{}, ctx.Err()
		case st, ok := <-sub:
			if !ok {
				return state.ProductsState{}, context.Canceled
			}
			if !st.Loading {
				return st, nil
			}
		}
	}
}

func (a *App) printProducts(list []models.Product) {
	if len(list) == 0 {
		a.println("No hay productos.")
		return
	}
	for _, p := range list {
		a.printf("%4d  %-32s %12s  %s\n", p.ID, p.Name, formatPrice(p.Price), p.Category)
	}
}

func (a *App) printProduct(p models.Product) {
	a.printf("#%d %s\n", p.ID, p.Name)
	a.printf("Categoría: %s\n", p.Category)
	a.printf("Precio:    %s\n", formatPrice(p.Price))
	if p.Description != "" {
		a.println(p.Description)
	}
}

// formatPrice renders CLP-style prices: $549.990.
func formatPrice(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}

func (a *App) showListing(ctx context.Context, action func(), banner bool) error {
	st, err := a.listAndWait(ctx, action)
	if err != nil {
		return err
	}
	if banner && st.Error != "" {
		a.println(st.Error)
	}
	a.printProducts(st.Products)
	return nil
}

// Products lists the whole catalogue.
func (a *App) Products(ctx context.Context) error {
	return a.showListing(ctx, a.catalog.LoadAll, false)
}

func (a *App) Category(ctx context.Context, category string) error {
	return a.showListing(ctx, func() { a.catalog.FilterByCategory(category) }, false)
}

func (a *App) Search(ctx context.Context, term string) error {
	return a.showListing(ctx, func() { a.catalog.Search(term) }, false)
}

// Show prints one product, read through the API.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		a.println("Uso: show <id>")
		return fmt.Errorf("%w: %q", errBadID, arg)
	}

	a.catalog.ShowDetail(ctx, id)
	st := a.catalog.State()
	if st.DetailError != "" || st.Selected == nil {
		a.println(st.DetailError)
		return errors.New(st.DetailError)
	}
	a.printProduct(*st.Selected)
	return nil
}

// offlineProducts prints the cached result of q without touching the API.
// A cache that cannot be read within the request timeout is an error.
func (a *App) offlineProducts(ctx context.Context, q services.ProductQuery) error {
	cancel := func() {}
	if a.config.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
	}
	defer cancel()

	select {
	case list, ok := <-a.products.WatchLocal(ctx, q):
		if !ok {
			return ctx.Err()
		}
		a.printProducts(list)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
