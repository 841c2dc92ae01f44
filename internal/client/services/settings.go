package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gamezone/internal/client/repositories/metadata"
)

const activeKey = "estado_activo"

// SettingsService keeps client-wide preferences in the metadata store.
type SettingsService interface {
	SetActive(ctx context.Context, active bool) error

	// Active defaults to false.
	Active(ctx context.Context) (bool, error)

	// Reset forgets every stored preference.
	Reset(ctx context.Context) error
}

type settingsService struct {
	repo metadata.Repository
}

func NewSettingsService(repo metadata.Repository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) SetActive(ctx context.Context, active bool) error {
	if err := s.repo.SetBool(ctx, activeKey, active); err != nil {
		return fmt.Errorf("save active flag: %w", err)
	}
	return nil
}

func (s *settingsService) Active(ctx context.Context) (bool, error) {
	v, err := s.repo.GetBool(ctx, activeKey, false)
	if err != nil {
		return false, fmt.Errorf("read active flag: %w", err)
	}
	return v, nil
}

func (s *settingsService) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
