package service

import (
	"context"
	"fmt"

	"cleanspot/internal/domain"
)

func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return doc.Settings, nil
}

// UpdateTheme persists the theme choice. Theme flips are the one settings
// change that is not logged.
func (s *Service) UpdateTheme(ctx context.Context, theme domain.Theme) (domain.Settings, error) {
	if !domain.ValidTheme(theme) {
		return domain.Settings{}, fmt.Errorf("%w: unknown theme %q", domain.ErrValidation, theme)
	}
	var out domain.Settings
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.Theme = theme
		out = doc.Settings
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}

// SetAIApprovalRate clamps to [0,1] and persists.
func (s *Service) SetAIApprovalRate(ctx context.Context, rate float64) (domain.Settings, error) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	var out domain.Settings
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.AIApprovalRate = rate
		s.appendLog(doc, "ai approval rate set to %.2f", rate)
		out = doc.Settings
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}

// SimulateNow sets the simulated clock offset in whole days; negative
// values rewind. Every subsequently produced timestamp shifts with it.
func (s *Service) SimulateNow(ctx context.Context, days int) (domain.Settings, error) {
	var out domain.Settings
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.NowOffsetDays = days
		s.appendLog(doc, "simulated clock offset set to %d days", days)
		out = doc.Settings
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	s.invalidate()
	return out, nil
}
