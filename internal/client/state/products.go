package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/services"
	"github.com/dmitrijs2005/gamezone/internal/logging"
)

// MsgOfflineEmpty is shown when the API is unreachable and nothing is cached.
const MsgOfflineEmpty = "Sin conexión y sin productos en caché"

// ProductsState is a snapshot of the product screens.
//
// Loading and Error belong to the listing; the detail view reports through
// DetailLoading and DetailError so the two never overwrite each other.
type ProductsState struct {
	Products []models.Product
	Selected *models.Product
	Loading  bool
	Error    string
	Search   string
	Category string

	DetailLoading bool
	DetailError   string
}

func (s ProductsState) clone() ProductsState {
	s.Products = slices.Clone(s.Products)
	if s.Selected != nil {
		p := *s.Selected
		s.Selected = &p
	}
	return s
}

// ProductsHolder drives the product listing and detail.
//
// Only the most recently issued list action may change the listing: each one
// cancels the previous subscription and results of superseded ones are
// dropped.
type ProductsHolder struct {
	svc services.ProductService
	log logging.Logger

	mu         sync.Mutex
	state      ProductsState
	seq        uint64
	listCancel context.CancelFunc
	closed     bool

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	hub    hub[ProductsState]
}

func NewProductsHolder(svc services.ProductService, log logging.Logger) *ProductsHolder {
	if log == nil {
		log = logging.Nop()
	}
	root, cancel := context.WithCancel(context.Background())
	return &ProductsHolder{
		svc:    svc,
		log:    log.With("holder", "products"),
		root:   root,
		cancel: cancel,
	}
}

// State returns a copy of the current state.
func (h *ProductsHolder) State() ProductsState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.clone()
}

// Subscribe delivers the current state and then the latest state after each
// change. The channel is closed by cancel or Close.
func (h *ProductsHolder) Subscribe() (<-chan ProductsState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hub.subscribe(h.state.clone())
}

// must be called with h.mu held
func (h *ProductsHolder) changed() {
	h.hub.publish(h.state.clone())
}

func (h *ProductsHolder) LoadAll() {
	h.list(services.AllProducts(), func(s *ProductsState) {
		s.Category = ""
		s.Search = ""
	})
}

func (h *ProductsHolder) FilterByCategory(category string) {
	h.list(services.ByCategory(category), func(s *ProductsState) {
		s.Category = category
		s.Search = ""
	})
}

func (h *ProductsHolder) Search(term string) {
	h.list(services.ByName(term), func(s *ProductsState) {
		s.Search = term
		s.Category = ""
	})
}

func (h *ProductsHolder) list(q services.ProductQuery, mutate func(*ProductsState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	if h.listCancel != nil {
		h.listCancel()
	}
	h.seq++
	seq := h.seq
	ctx, cancel := context.WithCancel(h.root)
	h.listCancel = cancel

	mutate(&h.state)
	h.state.Loading = true
	h.changed()

	h.wg.Add(1)
	go h.follow(ctx, seq, q)
}

func (h *ProductsHolder) follow(ctx context.Context, seq uint64, q services.ProductQuery) {
	defer h.wg.Done()
	defer func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.seq == seq && h.state.Loading {
			h.state.Loading = false
			h.changed()
		}
	}()

	for u := range h.svc.Watch(ctx, q) {
		h.mu.Lock()
		if h.seq != seq {
			h.mu.Unlock()
			return
		}
		h.state.Products = u.Items
		if u.Synced {
			h.state.Loading = false
			if len(u.Items) == 0 && u.SyncErr != nil {
				h.state.Error = MsgOfflineEmpty
			} else {
				h.state.Error = ""
			}
		}
		h.changed()
		h.mu.Unlock()
	}
}

// ShowDetail loads one product through the API, falling back to the cache,
// and selects it. It leaves the listing state alone.
func (h *ProductsHolder) ShowDetail(ctx context.Context, id int64) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.state.DetailLoading = true
	h.state.DetailError = ""
	h.changed()
	h.mu.Unlock()

	p, err := h.svc.Get(ctx, id)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.DetailLoading = false
	if err != nil {
		h.log.Warn(ctx, "product detail failed", "id", id, "err", err)
		h.state.DetailError = fmt.Sprintf("Error al cargar producto: %v", err)
	} else {
		h.state.Selected = &p
	}
	h.changed()
}

func (h *ProductsHolder) Select(p models.Product) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Selected = &p
	h.changed()
}

func (h *ProductsHolder) ClearSelection() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Selected = nil
	h.state.DetailError = ""
	h.changed()
}

// Close stops every listing and closes all subscriptions. It waits for the
// listing goroutines to exit.
func (h *ProductsHolder) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.cancel()
	h.mu.Unlock()

	h.wg.Wait()
	h.hub.close()
}
