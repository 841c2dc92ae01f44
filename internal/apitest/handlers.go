package apitest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/goccy/go-json"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := sortedValues(s.users, nil)
	s.mu.Unlock()
	for i := range list {
		list[i] = public(list[i])
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	u, found := s.users[id]
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, public(u))
}

func (s *Server) findByEmail(email string) (client.UserDTO, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return client.UserDTO{}, false
}

func (s *Server) userByEmail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, found := s.findByEmail(param(r, "correo"))
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, public(u))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in client.UserDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if _, taken := s.findByEmail(in.Email); taken {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "correo ya registrado")
		return
	}
	in.ID = s.nextUserID
	s.nextUserID++
	s.users[in.ID] = in
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, public(in))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("correo")
	password := r.URL.Query().Get("clave")

	s.mu.Lock()
	u, found := s.findByEmail(email)
	s.mu.Unlock()
	if !found || u.Password != password {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	writeJSON(w, http.StatusOK, public(u))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in client.UserDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	cur, found := s.users[id]
	if !found {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	in.ID = id
	if in.Password == "" {
		in.Password = cur.Password
	}
	s.users[id] = in
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, public(in))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.users[id]
	delete(s.users, id)
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := sortedValues(s.products, nil)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p, found := s.products[id]
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) productsByCategory(w http.ResponseWriter, r *http.Request) {
	category := param(r, "categoria")
	s.mu.Lock()
	list := sortedValues(s.products, func(p client.ProductDTO) bool { return p.Category == category })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(param(r, "nombre"))
	s.mu.Lock()
	list := sortedValues(s.products, func(p client.ProductDTO) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in client.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	if in.ID == 0 {
		for id := range s.products {
			in.ID = max(in.ID, id)
		}
		in.ID++
	}
	s.products[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in client.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	_, found := s.products[id]
	if found {
		in.ID = id
		s.products[id] = in
	}
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.products, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
