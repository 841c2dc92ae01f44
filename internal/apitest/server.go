// Package apitest runs an in-memory GameZone API for tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/common"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// Call records one request received by the fake.
type Call struct {
	Method    string
	Path      string
	RequestID string
}

// Server is a fake of the remote API backed by maps. It is safe for
// concurrent use.
type Server struct {
	mu         sync.Mutex
	users      map[int64]client.UserDTO
	products   map[int64]client.ProductDTO
	nextUserID int64
	failStatus int
	calls      []Call
	hold       chan struct{}

	srv *httptest.Server
}

// New starts a fake API that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		users:      map[int64]client.UserDTO{},
		products:   map[int64]client.ProductDTO{},
		nextUserID: 1,
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

// Close stops the server. Later requests fail to connect, like an
// unreachable API.
func (s *Server) Close() {
	s.mu.Lock()
	if s.hold != nil {
		close(s.hold)
		s.hold = nil
	}
	s.mu.Unlock()
	s.srv.Close()
}

// FailWith makes every request answer status; 0 restores normal behaviour.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Hold blocks every request until the returned release func is called.
func (s *Server) Hold() (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.hold = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.hold == ch {
				s.hold = nil
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

// SeedProducts stores products as the remote catalogue.
func (s *Server) SeedProducts(list ...client.ProductDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range list {
		s.products[p.ID] = p
	}
}

// RemoveProduct deletes a product from the remote catalogue.
func (s *Server) RemoveProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// SeedUser stores u, including its password, and returns its id.
func (s *Server) SeedUser(u client.UserDTO) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextUserID
	}
	if u.ID >= s.nextUserID {
		s.nextUserID = u.ID + 1
	}
	s.users[u.ID] = u
	return u.ID
}

// User returns the stored user with its password.
func (s *Server) User(id int64) (client.UserDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Calls returns a copy of the request log.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// CallCount counts requests whose method matches and whose path has prefix.
func (s *Server) CallCount(method, prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasPrefix(c.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(s.record)

	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/auth/login", s.login)
		r.Get("/correo/{correo}", s.userByEmail)
		r.Get("/{id}", s.getUser)
		r.Put("/{id}", s.updateUser)
		r.Delete("/{id}", s.deleteUser)
	})

	r.Route("/productos", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/categoria/{categoria}", s.productsByCategory)
		r.Get("/buscar/{nombre}", s.searchProducts)
		r.Get("/{id}", s.getProduct)
		r.Put("/{id}", s.updateProduct)
		r.Delete("/{id}", s.deleteProduct)
	})

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get(common.RequestIDHeader)})
		status := s.failStatus
		hold := s.hold
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			writeError(w, status, "forced failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		if keep == nil || keep(m[k]) {
			out = append(out, m[k])
		}
	}
	return out
}

// public hides the password the way a real API would.
func public(u client.UserDTO) client.UserDTO {
	u.Password = ""
	return u
}
