package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cleanspot/internal/domain"
)

// CleanupParams carries the pre-computed approval decision: the AI
// verification policy lives with the caller, this core treats the boolean
// as an opaque input.
type CleanupParams struct {
	SpotID      string
	UserID      string
	BeforeImage string
	AfterImage  string
	Approved    bool
	Reason      string
}

type CleanupResult struct {
	Approved bool              `json:"approved"`
	Reason   string            `json:"reason,omitempty"`
	Awarded  int               `json:"awarded"`
	Spot     domain.Spot       `json:"spot"`
	User     domain.PublicUser `json:"user"`
}

// RecordCleanup is the central state transition. Rejection appends a log
// entry and changes nothing else; approval awards points, extends the
// streak, promotes the spot and resets its decay clock.
func (s *Service) RecordCleanup(ctx context.Context, p CleanupParams) (CleanupResult, error) {
	if !validImage(p.BeforeImage) || !validImage(p.AfterImage) {
		return CleanupResult{}, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrValidation, maxImageBytes)
	}

	var out CleanupResult
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		spot := doc.SpotByID(p.SpotID)
		if spot == nil {
			return domain.ErrSpotNotFound
		}
		u := doc.UserByID(p.UserID)
		if u == nil {
			return domain.ErrUserNotFound
		}
		now := s.clk.Now(doc)

		if !p.Approved {
			s.appendLog(doc, "cleanup rejected for %s at spot %s: %s", u.Email, spot.ID, p.Reason)
			out = CleanupResult{Approved: false, Reason: p.Reason, Spot: *spot, User: u.Sanitize()}
			return nil
		}

		award := basePoints
		if u.IsPremium {
			award *= premiumMultiplier
		}
		u.Points += award
		u.Streak++ // rejections never touch the streak
		t := now
		u.LastCleanupAt = &t
		u.Cleanups = append(u.Cleanups, domain.CleanupRecord{
			ID:        s.newID(),
			SpotID:    spot.ID,
			Points:    award,
			Premium:   u.IsPremium,
			Timestamp: now,
		})

		if u.IsPremium {
			spot.Status = domain.SpotPremium
		} else {
			spot.Status = domain.SpotVerified
		}
		spot.VerifiedBy = u.ID
		spot.PremiumCleanup = u.IsPremium
		spot.BeforeImage = p.BeforeImage
		spot.AfterImage = p.AfterImage
		spot.UpdatedAt = now

		s.appendLog(doc, "cleanup approved for %s at spot %s, +%d pts", u.Email, spot.ID, award)
		out = CleanupResult{Approved: true, Awarded: award, Spot: *spot, User: u.Sanitize()}
		return nil
	})
	if err != nil {
		return CleanupResult{}, err
	}
	s.invalidate()
	s.log.Info("cleanup recorded",
		zap.String("spot", p.SpotID),
		zap.String("user", p.UserID),
		zap.Bool("approved", p.Approved),
		zap.Int("awarded", out.Awarded),
	)
	return out, nil
}
