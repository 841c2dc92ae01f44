package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamezone/internal/client/avatars"
	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/users"
	"github.com/dmitrijs2005/gamezone/internal/cryptox"
	"github.com/dmitrijs2005/gamezone/internal/logging"
)

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User models.User

	// Offline is set when the API was unreachable and the password was
	// checked against the cached hash instead.
	Offline bool
}

// UserService manages accounts.
//
// Contract:
//   - WatchAll: cache-first list of every user, refreshed once from the API.
//   - Register, Update, Delete: remote-first writes mirrored locally.
//   - Sync: read-through lookup by id with fallback to the cache.
//   - Local, ByEmail, EmailExists: cache only.
//   - Login: online login, offline fallback when the API is unreachable.
type UserService interface {
	WatchAll(ctx context.Context) <-chan live.Update[models.User]
	RefreshAll(ctx context.Context) error
	Register(ctx context.Context, form models.UserForm) (models.User, error)
	Update(ctx context.Context, id int64, form models.UserForm) (models.User, error)
	Delete(ctx context.Context, u models.User) error
	Sync(ctx context.Context, id int64) (models.User, error)
	Local(ctx context.Context, id int64) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

type userService struct {
	api     client.UsersAPI
	repo    users.Repository
	avatars avatars.Uploader
	log     logging.Logger
}

// NewUserService wires the service. uploader may be nil, in which case
// image references are sent as they are.
func NewUserService(api client.UsersAPI, repo users.Repository, uploader avatars.Uploader, log logging.Logger) UserService {
	if log == nil {
		log = logging.Nop()
	}
	return &userService{api: api, repo: repo, avatars: uploader, log: log.With("service", "users")}
}

func (s *userService) WatchAll(ctx context.Context) <-chan live.Update[models.User] {
	refresh := func(ctx context.Context) error {
		err := s.RefreshAll(ctx)
		if err != nil && ctx.Err() == nil {
			s.log.Warn(ctx, "user refresh failed, serving cache", "err", err)
		}
		return err
	}
	onErr := func(err error) {
		s.log.Error(ctx, "user cache read failed", "err", err)
	}
	return live.Sync(ctx, s.repo.Notifier(), s.repo.GetAll, refresh, onErr)
}

// RefreshAll replaces the cached users with the remote list. Cached password
// hashes are kept for users that are still present.
func (s *userService) RefreshAll(ctx context.Context) error {
	dtos, err := s.api.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("fetch users: %w", err)
	}

	cached, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read cached users: %w", err)
	}
	hashes := make(map[int64]string, len(cached))
	for _, u := range cached {
		hashes[u.ID] = u.PasswordHash
	}

	list := make([]models.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := client.UserFromDTO(dto, hashes[dto.ID])
		if err != nil {
			s.log.Warn(ctx, "skipping invalid user", "id", dto.ID, "err", err)
			continue
		}
		list = append(list, u)
	}

	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		return fmt.Errorf("store users: %w", err)
	}
	return nil
}

// publishImage replaces a local image path with an uploaded URL. Upload
// failures keep the local reference.
func (s *userService) publishImage(ctx context.Context, img *string) *string {
	if img == nil || s.avatars == nil || avatars.IsRemote(*img) {
		return img
	}
	url, err := s.avatars.Upload(ctx, *img)
	if err != nil {
		s.log.Warn(ctx, "avatar upload failed, keeping local reference", "err", err)
		return img
	}
	return &url
}

func (s *userService) Register(ctx context.Context, form models.UserForm) (models.User, error) {
	taken, err := s.repo.EmailExists(ctx, form.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	draft := form.ToUser(0)
	draft.Image = s.publishImage(ctx, draft.Image)

	created, err := s.api.CreateUser(ctx, client.UserToDTO(draft, form.Password))
	if err != nil {
		s.log.Error(ctx, "remote registration failed", "email", form.Email, "err", err)
		if errors.Is(err, client.ErrConflict) {
			return models.User{}, fmt.Errorf("%w: %w", ErrEmailTaken, err)
		}
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	u, err := client.UserFromDTO(created, cryptox.HashPassword(form.Password))
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	if _, err := s.repo.Insert(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	s.log.Info(ctx, "user registered", "id", u.ID)
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int64, form models.UserForm) (models.User, error) {
	hash := form.PasswordHash
	if form.Password != "" {
		hash = cryptox.HashPassword(form.Password)
	}

	draft := form.ToUser(id)
	draft.Image = s.publishImage(ctx, draft.Image)

	updated, err := s.api.UpdateUser(ctx, id, client.UserToDTO(draft, form.Password))
	if err != nil {
		s.log.Error(ctx, "remote update failed", "id", id, "err", err)
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}

	u, err := client.UserFromDTO(updated, hash)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	if _, err := s.repo.Insert(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

// Delete removes the account remotely, then locally. An account the API no
// longer knows is still removed from the cache.
func (s *userService) Delete(ctx context.Context, u models.User) error {
	if err := s.api.DeleteUser(ctx, u.ID); err != nil && !errors.Is(err, client.ErrNotFound) {
		s.log.Error(ctx, "remote delete failed", "id", u.ID, "err", err)
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	if err := s.repo.Delete(ctx, u); err != nil {
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	return nil
}

func (s *userService) Sync(ctx context.Context, id int64) (models.User, error) {
	cached, cerr := s.repo.GetByID(ctx, id)
	if cerr != nil {
		s.log.Error(ctx, "user cache read failed", "id", id, "err", cerr)
	}

	dto, err := s.api.GetUser(ctx, id)
	if err == nil {
		var hash string
		if cached != nil {
			hash = cached.PasswordHash
		}
		u, derr := client.UserFromDTO(dto, hash)
		if derr == nil {
			if _, ierr := s.repo.Insert(ctx, u); ierr != nil {
				s.log.Error(ctx, "failed to cache user", "id", id, "err", ierr)
			}
			return u, nil
		}
		err = derr
	}

	if cached != nil {
		s.log.Warn(ctx, "user fetch failed, serving cache", "id", id, "err", err)
		return *cached, nil
	}
	return models.User{}, fmt.Errorf("sync user %d: %w", id, err)
}

func (s *userService) Local(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

func (s *userService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	dto, err := s.api.Login(ctx, email, password)
	switch {
	case err == nil:
		u, err := client.UserFromDTO(dto, cryptox.HashPassword(password))
		if err != nil {
			return LoginResult{}, fmt.Errorf("login: %w", err)
		}
		if _, err := s.repo.Insert(ctx, u); err != nil {
			return LoginResult{}, fmt.Errorf("login: %w", err)
		}
		return LoginResult{User: u}, nil

	case errors.Is(err, client.ErrUnauthorized):
		return LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)

	case errors.Is(err, client.ErrUnavailable):
		return s.offlineLogin(ctx, email, password, err)

	default:
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
}

func (s *userService) offlineLogin(ctx context.Context, email, password string, remoteErr error) (LoginResult, error) {
	cached, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error(ctx, "user cache read failed", "email", email, "err", err)
	}
	if cached == nil || cached.PasswordHash == "" {
		return LoginResult{}, fmt.Errorf("login: %w", remoteErr)
	}

	ok, err := cryptox.VerifyPassword(cached.PasswordHash, password)
	if err != nil {
		s.log.Warn(ctx, "cached password hash unusable", "id", cached.ID, "err", err)
		return LoginResult{}, fmt.Errorf("login: %w", remoteErr)
	}
	if !ok {
		return LoginResult{}, fmt.Errorf("%w (offline)", ErrInvalidCredentials)
	}

	s.log.Info(ctx, "offline login", "id", cached.ID)
	return LoginResult{User: *cached, Offline: true}, nil
}
