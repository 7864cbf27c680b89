package service

import (
	"context"

	"cleanspot/internal/domain"
)

// SessionInfo returns the active session snapshot, or nil when logged out.
func (s *Service) SessionInfo(ctx context.Context) (*domain.Session, error) {
	return s.store.LoadSession(ctx)
}

func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// ResetAllData discards the whole document, reseeds the admin account and
// clears any active session.
func (s *Service) ResetAllData(ctx context.Context) error {
	if _, err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.invalidate()
	return nil
}
