package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/products"
	"github.com/dmitrijs2005/gamezone/internal/logging"
)

// QueryKind selects the shape of a product list read.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryCategory
	QueryName
)

// ProductQuery describes a product list read. Build it with AllProducts,
// ByCategory or ByName.
type ProductQuery struct {
	Kind  QueryKind
	Value string
}

func AllProducts() ProductQuery { return ProductQuery{Kind: QueryAll} }

// ByCategory matches the category exactly. A blank category means all
// products.
func ByCategory(category string) ProductQuery {
	if strings.TrimSpace(category) == "" {
		return AllProducts()
	}
	return ProductQuery{Kind: QueryCategory, Value: category}
}

// ByName matches a case-insensitive substring of the name. A blank term
// means all products.
func ByName(term string) ProductQuery {
	term = strings.TrimSpace(term)
	if term == "" {
		return AllProducts()
	}
	return ProductQuery{Kind: QueryName, Value: term}
}

func (q ProductQuery) String() string {
	switch q.Kind {
	case QueryCategory:
		return "category:" + q.Value
	case QueryName:
		return "name:" + q.Value
	default:
		return "all"
	}
}

// ProductService serves the product catalogue.
type ProductService interface {
	// Watch streams q: cached result, then the result after a remote refresh,
	// then every later local change, until ctx is done.
	Watch(ctx context.Context, q ProductQuery) <-chan live.Update[models.Product]

	// WatchLocal streams q from the cache only.
	WatchLocal(ctx context.Context, q ProductQuery) <-chan []models.Product

	// Refresh fetches q remotely and reconciles the cache.
	Refresh(ctx context.Context, q ProductQuery) error

	// Get is a read-through point lookup.
	Get(ctx context.Context, id int64) (models.Product, error)
}

type productService struct {
	api  client.ProductsAPI
	repo products.Repository
	log  logging.Logger
}

func NewProductService(api client.ProductsAPI, repo products.Repository, log logging.Logger) ProductService {
	if log == nil {
		log = logging.Nop()
	}
	return &productService{api: api, repo: repo, log: log.With("service", "products")}
}

func (s *productService) local(q ProductQuery) live.Query[models.Product] {
	return func(ctx context.Context) ([]models.Product, error) {
		switch q.Kind {
		case QueryCategory:
			return s.repo.GetByCategory(ctx, q.Value)
		case QueryName:
			return s.repo.SearchByName(ctx, q.Value)
		default:
			return s.repo.GetAll(ctx)
		}
	}
}

func (s *productService) Watch(ctx context.Context, q ProductQuery) <-chan live.Update[models.Product] {
	refresh := func(ctx context.Context) error {
		err := s.Refresh(ctx, q)
		if err != nil && ctx.Err() == nil {
			s.log.Warn(ctx, "product refresh failed, serving cache", "query", q.String(), "err", err)
		}
		return err
	}
	onErr := func(err error) {
		s.log.Error(ctx, "product cache read failed", "query", q.String(), "err", err)
	}
	return live.Sync(ctx, s.repo.Notifier(), s.local(q), refresh, onErr)
}

func (s *productService) WatchLocal(ctx context.Context, q ProductQuery) <-chan []models.Product {
	return live.Watch(ctx, s.repo.Notifier(), s.local(q), func(err error) {
		s.log.Error(ctx, "product cache read failed", "query", q.String(), "err", err)
	})
}

func (s *productService) fromDTOs(ctx context.Context, dtos []client.ProductDTO) []models.Product {
	list := make([]models.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := client.ProductFromDTO(dto)
		if err != nil {
			s.log.Warn(ctx, "skipping invalid product", "id", dto.ID, "err", err)
			continue
		}
		list = append(list, p)
	}
	return list
}

func (s *productService) Refresh(ctx context.Context, q ProductQuery) error {
	var (
		dtos []client.ProductDTO
		err  error
	)
	switch q.Kind {
	case QueryCategory:
		dtos, err = s.api.ProductsByCategory(ctx, q.Value)
	case QueryName:
		dtos, err = s.api.SearchProducts(ctx, q.Value)
	default:
		dtos, err = s.api.ListProducts(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetch products (%s): %w", q, err)
	}

	list := s.fromDTOs(ctx, dtos)
	if q.Kind == QueryAll {
		err = s.repo.ReplaceAll(ctx, list)
	} else {
		err = s.repo.InsertMany(ctx, list)
	}
	if err != nil {
		return fmt.Errorf("store products (%s): %w", q, err)
	}

	s.log.Debug(ctx, "products refreshed", "query", q.String(), "count", len(list))
	return nil
}

func (s *productService) Get(ctx context.Context, id int64) (models.Product, error) {
	p, err := s.fetch(ctx, id)
	if err == nil {
		return p, nil
	}

	cached, cerr := s.repo.GetByID(ctx, id)
	if cerr != nil {
		s.log.Error(ctx, "product cache read failed", "id", id, "err", cerr)
	}
	if cached != nil {
		s.log.Warn(ctx, "product fetch failed, serving cache", "id", id, "err", err)
		return *cached, nil
	}
	return models.Product{}, err
}

func (s *productService) fetch(ctx context.Context, id int64) (models.Product, error) {
	dto, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	p, err := client.ProductFromDTO(dto)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		// the remote answer is still good
		s.log.Error(ctx, "failed to cache product", "id", id, "err", err)
	}
	return p, nil
}

// IsOffline reports whether err comes from an unreachable API.
func IsOffline(err error) bool {
	return errors.Is(err, client.ErrUnavailable)
}
