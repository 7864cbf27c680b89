package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cleanspot/internal/domain"
	"cleanspot/pkg/utils"
)

type CreateUserParams struct {
	Name     string
	Email    string
	Password string
}

// CreateUser registers a fresh account: role user, zero points and streak,
// empty history. Fails with ErrDuplicateEmail on a normalized-email clash.
func (s *Service) CreateUser(ctx context.Context, p CreateUserParams) (domain.PublicUser, error) {
	name := strings.TrimSpace(p.Name)
	email := domain.NormalizeEmail(p.Email)
	if name == "" || email == "" || p.Password == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	var out domain.PublicUser
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		if doc.UserByEmail(email) != nil {
			return domain.ErrDuplicateEmail
		}
		u := domain.User{
			ID:           s.newID(),
			Name:         name,
			Email:        email,
			PasswordHash: utils.HashPassword(p.Password),
			Role:         domain.RoleUser,
			CreatedAt:    s.clk.Now(doc),
			Cleanups:     []domain.CleanupRecord{},
		}
		doc.Users = append(doc.Users, u)
		s.appendLog(doc, "user registered: %s", u.Email)
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate()
	s.log.Info("user created", zap.String("email", email))
	return out, nil
}

// Login checks, in order: account exists, not banned, password matches.
// Success writes the session snapshot and returns the sanitized user.
func (s *Service) Login(ctx context.Context, email, password string) (domain.PublicUser, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.PublicUser{}, err
	}
	u := doc.UserByEmail(email)
	if u == nil {
		return domain.PublicUser{}, domain.ErrUserNotFound
	}
	if u.Banned {
		return domain.PublicUser{}, domain.ErrBanned
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return domain.PublicUser{}, domain.ErrInvalidCredential
	}

	sess := &domain.Session{
		UserID:     u.ID,
		Role:       u.Role,
		LoggedInAt: s.clk.Now(doc),
	}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return domain.PublicUser{}, err
	}
	return u.Sanitize(), nil
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.PublicUser, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.PublicUser{}, err
	}
	u := doc.UserByID(id)
	if u == nil {
		return domain.PublicUser{}, domain.ErrUserNotFound
	}
	return u.Sanitize(), nil
}

type UpdateUserParams struct {
	Name  *string
	Email *string
}

func (s *Service) UpdateUser(ctx context.Context, id string, p UpdateUserParams) (domain.PublicUser, error) {
	var out domain.PublicUser
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.UserByID(id)
		if u == nil {
			return domain.ErrUserNotFound
		}
		if p.Name != nil {
			name := strings.TrimSpace(*p.Name)
			if name == "" {
				return fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
			}
			u.Name = name
		}
		if p.Email != nil {
			email := domain.NormalizeEmail(*p.Email)
			if email == "" {
				return fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
			}
			if other := doc.UserByEmail(email); other != nil && other.ID != u.ID {
				return domain.ErrDuplicateEmail
			}
			u.Email = email
		}
		s.appendLog(doc, "user updated: %s", u.Email)
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate()
	return out, nil
}

// BanUser toggles the banned flag. An already-established session stays
// valid until the next login attempt; known limitation, kept on purpose.
func (s *Service) BanUser(ctx context.Context, id string) (domain.PublicUser, error) {
	var out domain.PublicUser
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.UserByID(id)
		if u == nil {
			return domain.ErrUserNotFound
		}
		u.Banned = !u.Banned
		if u.Banned {
			s.appendLog(doc, "user banned: %s", u.Email)
		} else {
			s.appendLog(doc, "user unbanned: %s", u.Email)
		}
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate()
	return out, nil
}

// UpgradeToPremium is idempotent; a second call is a harmless no-op.
func (s *Service) UpgradeToPremium(ctx context.Context, id string) (domain.PublicUser, error) {
	var out domain.PublicUser
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.UserByID(id)
		if u == nil {
			return domain.ErrUserNotFound
		}
		if !u.IsPremium {
			u.IsPremium = true
			s.appendLog(doc, "user upgraded to premium: %s", u.Email)
		}
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate()
	return out, nil
}
