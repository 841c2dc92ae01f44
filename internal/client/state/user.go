package state

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/services"
	"github.com/dmitrijs2005/gamezone/internal/logging"
)

const (
	MsgEmailTaken     = "Este correo ya está registrado"
	MsgRegisterFailed = "Error al registrar usuario en el servidor"
	MsgBadCredentials = "Correo o contraseña incorrectos"
	MsgLoginFailed    = "Error al iniciar sesión. Verifica tu conexión"
	MsgUpdateFailed   = "Error al actualizar usuario"
	MsgDeleteFailed   = "Error al eliminar la cuenta"
	MsgNoSession      = "Debe iniciar sesión"
)

// UserState is a snapshot of the account screens.
type UserState struct {
	Form       models.UserForm
	Loading    bool
	RegisterOK bool
	LoginOK    bool

	// CurrentUserID is nil when nobody is logged in.
	CurrentUserID *int64

	// Offline is set when the session was opened against the local cache.
	Offline bool

	// Error reports failures that do not belong to a form field.
	Error string
}

func (s UserState) clone() UserState {
	s.Form.Interests = slices.Clone(s.Form.Interests)
	if s.Form.Image != nil {
		img := *s.Form.Image
		s.Form.Image = &img
	}
	if s.CurrentUserID != nil {
		id := *s.CurrentUserID
		s.CurrentUserID = &id
	}
	return s
}

// UserHolder drives registration, login and the profile screens. Actions run
// on the calling goroutine.
type UserHolder struct {
	svc services.UserService
	log logging.Logger

	mu    sync.Mutex
	state UserState
	hub   hub[UserState]
}

func NewUserHolder(svc services.UserService, log logging.Logger) *UserHolder {
	if log == nil {
		log = logging.Nop()
	}
	return &UserHolder{svc: svc, log: log.With("holder", "user")}
}

func (h *UserHolder) State() UserState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.clone()
}

// Subscribe delivers the current state and then the latest state after each
// change.
func (h *UserHolder) Subscribe() (<-chan UserState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hub.subscribe(h.state.clone())
}

// update applies fn under the lock and publishes the result.
func (h *UserHolder) update(fn func(s *UserState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.state)
	h.hub.publish(h.state.clone())
}

func (h *UserHolder) begin() {
	h.update(func(s *UserState) {
		s.Loading = true
		s.Error = ""
	})
}

func (h *UserHolder) end() {
	h.update(func(s *UserState) { s.Loading = false })
}

func (h *UserHolder) SetName(v string) {
	h.update(func(s *UserState) { s.Form.Name, s.Form.Errors.Name = v, "" })
}

func (h *UserHolder) SetEmail(v string) {
	h.update(func(s *UserState) { s.Form.Email, s.Form.Errors.Email = v, "" })
}

func (h *UserHolder) SetPassword(v string) {
	h.update(func(s *UserState) { s.Form.Password, s.Form.Errors.Password = v, "" })
}

func (h *UserHolder) SetAddress(v string) {
	h.update(func(s *UserState) { s.Form.Address, s.Form.Errors.Address = v, "" })
}

func (h *UserHolder) SetAcceptedTerms(v bool) {
	h.update(func(s *UserState) { s.Form.AcceptedTerms = v })
}

// ToggleInterest adds or removes tag. Adding a tag twice keeps one copy.
func (h *UserHolder) ToggleInterest(tag string, on bool) {
	h.update(func(s *UserState) {
		tags := slices.DeleteFunc(slices.Clone(s.Form.Interests), func(t string) bool { return t == tag })
		if on {
			tags = append(tags, tag)
		}
		s.Form.Interests = tags
	})
}

func (h *UserHolder) SetImage(ref string) {
	h.update(func(s *UserState) {
		if ref == "" {
			s.Form.Image = nil
			return
		}
		s.Form.Image = &ref
	})
}

// Validate recomputes every field error of the form and reports whether the
// form is valid.
func (h *UserHolder) Validate() bool {
	var ok bool
	h.update(func(s *UserState) {
		s.Form.Errors = models.ValidateForm(s.Form)
		ok = !s.Form.Errors.Any()
	})
	return ok
}

// ValidateLogin checks the email and password of the form only.
func (h *UserHolder) ValidateLogin() bool {
	var ok bool
	h.update(func(s *UserState) {
		s.Form.Errors = models.ValidateLogin(s.Form.Email, s.Form.Password)
		ok = !s.Form.Errors.Any()
	})
	return ok
}

func (h *UserHolder) setEmailError(msg string) {
	h.update(func(s *UserState) { s.Form.Errors.Email = msg })
}

// Register creates the account described by the form.
func (h *UserHolder) Register(ctx context.Context) bool {
	h.begin()
	defer h.end()

	if !h.Validate() {
		return false
	}
	form := h.State().Form

	taken, err := h.svc.EmailExists(ctx, form.Email)
	if err != nil {
		h.log.Error(ctx, "email check failed", "err", err)
	}
	if taken {
		h.setEmailError(MsgEmailTaken)
		return false
	}

	u, err := h.svc.Register(ctx, form)
	if err != nil {
		h.log.Error(ctx, "registration failed", "err", err)
		msg := MsgRegisterFailed
		if errors.Is(err, services.ErrEmailTaken) {
			msg = MsgEmailTaken
		}
		h.setEmailError(msg)
		return false
	}

	h.update(func(s *UserState) {
		s.CurrentUserID = &u.ID
		s.RegisterOK = true
		s.Form.Password = ""
		s.Form.PasswordHash = u.PasswordHash
	})
	return true
}

// Login opens a session. On success the form shows the stored profile.
func (h *UserHolder) Login(ctx context.Context, email, password string) bool {
	h.begin()
	defer h.end()

	h.update(func(s *UserState) {
		s.Form.Email = email
		s.Form.Password = password
	})
	if !h.ValidateLogin() {
		return false
	}

	res, err := h.svc.Login(ctx, email, password)
	if err != nil {
		h.log.Warn(ctx, "login failed", "err", err)
		msg := MsgLoginFailed
		if errors.Is(err, services.ErrInvalidCredentials) {
			msg = MsgBadCredentials
		}
		h.setEmailError(msg)
		return false
	}

	h.update(func(s *UserState) {
		s.Form = models.FormFromUser(res.User)
		s.CurrentUserID = &res.User.ID
		s.LoginOK = true
		s.Offline = res.Offline
	})
	return true
}

// Update saves the form as the profile of the current user.
func (h *UserHolder) Update(ctx context.Context) bool {
	h.begin()
	defer h.end()

	if !h.Validate() {
		return false
	}
	st := h.State()
	if st.CurrentUserID == nil {
		h.update(func(s *UserState) { s.Error = MsgNoSession })
		return false
	}

	u, err := h.svc.Update(ctx, *st.CurrentUserID, st.Form)
	if err != nil {
		h.log.Error(ctx, "profile update failed", "id", *st.CurrentUserID, "err", err)
		h.setEmailError(MsgUpdateFailed)
		return false
	}

	h.update(func(s *UserState) { s.Form = models.FormFromUser(u) })
	return true
}

// Load shows the cached profile of id right away and then replaces it with
// the API's copy when that is reachable.
func (h *UserHolder) Load(ctx context.Context, id int64) {
	h.begin()
	defer h.end()

	local, err := h.svc.Local(ctx, id)
	if err != nil {
		h.log.Error(ctx, "local profile read failed", "id", id, "err", err)
	}
	if local != nil {
		h.update(func(s *UserState) {
			s.Form = models.FormFromUser(*local)
			s.CurrentUserID = &local.ID
		})
	}

	u, err := h.svc.Sync(ctx, id)
	if err != nil {
		h.log.Warn(ctx, "profile sync failed", "id", id, "err", err)
		return
	}
	h.update(func(s *UserState) {
		s.Form = models.FormFromUser(u)
		s.CurrentUserID = &u.ID
	})
}

// DeleteAccount removes the current account and logs out.
func (h *UserHolder) DeleteAccount(ctx context.Context) bool {
	h.begin()
	defer h.end()

	st := h.State()
	if st.CurrentUserID == nil {
		h.update(func(s *UserState) { s.Error = MsgNoSession })
		return false
	}

	if err := h.svc.Delete(ctx, models.User{ID: *st.CurrentUserID, Email: st.Form.Email}); err != nil {
		h.log.Error(ctx, "account delete failed", "id", *st.CurrentUserID, "err", err)
		h.update(func(s *UserState) { s.Error = MsgDeleteFailed })
		return false
	}

	h.Logout()
	return true
}

func (h *UserHolder) Logout() {
	h.update(func(s *UserState) {
		s.CurrentUserID = nil
		s.LoginOK = false
		s.Offline = false
		s.RegisterOK = false
		s.Form = models.UserForm{}
	})
}

func (h *UserHolder) ResetForm() {
	h.update(func(s *UserState) {
		s.Form = models.UserForm{}
		s.RegisterOK = false
	})
}

func (h *UserHolder) ResetRegisterOK() {
	h.update(func(s *UserState) { s.RegisterOK = false })
}

func (h *UserHolder) ResetLoginOK() {
	h.update(func(s *UserState) { s.LoginOK = false })
}

func (h *UserHolder) ClearErrors() {
	h.update(func(s *UserState) {
		s.Form.Errors = models.FormErrors{}
		s.Error = ""
	})
}

// Close ends all subscriptions.
func (h *UserHolder) Close() {
	h.hub.close()
}
