package service

import (
	"context"
	"fmt"

	"cleanspot/internal/domain"
)

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func validImage(img string) bool {
	return len(img) <= maxImageBytes
}

// CreateSpot claims a map location. Status always starts unverified, no
// matter the reporter's tier.
func (s *Service) CreateSpot(ctx context.Context, lat, lng float64, reportedBy string) (domain.Spot, error) {
	if !validCoords(lat, lng) {
		return domain.Spot{}, fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	var out domain.Spot
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.UserByID(reportedBy)
		if u == nil {
			return domain.ErrUserNotFound
		}
		now := s.clk.Now(doc)
		spot := domain.Spot{
			ID:         s.newID(),
			Lat:        lat,
			Lng:        lng,
			Status:     domain.SpotUnverified,
			ReportedBy: u.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		doc.Spots = append(doc.Spots, spot)
		s.appendLog(doc, "spot reported at (%.4f, %.4f) by %s", lat, lng, u.Email)
		out = spot
		return nil
	})
	if err != nil {
		return domain.Spot{}, err
	}
	return out, nil
}

type UpdateSpotParams struct {
	Lat         *float64
	Lng         *float64
	BeforeImage *string
	AfterImage  *string
}

// UpdateSpot edits a claimed spot. Touching it resets the decay clock.
func (s *Service) UpdateSpot(ctx context.Context, id string, p UpdateSpotParams) (domain.Spot, error) {
	var out domain.Spot
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		spot := doc.SpotByID(id)
		if spot == nil {
			return domain.ErrSpotNotFound
		}
		if p.Lat != nil || p.Lng != nil {
			lat, lng := spot.Lat, spot.Lng
			if p.Lat != nil {
				lat = *p.Lat
			}
			if p.Lng != nil {
				lng = *p.Lng
			}
			if !validCoords(lat, lng) {
				return fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
			}
			spot.Lat, spot.Lng = lat, lng
		}
		if p.BeforeImage != nil {
			if !validImage(*p.BeforeImage) {
				return fmt.Errorf("%w: before image exceeds %d bytes", domain.ErrValidation, maxImageBytes)
			}
			spot.BeforeImage = *p.BeforeImage
		}
		if p.AfterImage != nil {
			if !validImage(*p.AfterImage) {
				return fmt.Errorf("%w: after image exceeds %d bytes", domain.ErrValidation, maxImageBytes)
			}
			spot.AfterImage = *p.AfterImage
		}
		spot.UpdatedAt = s.clk.Now(doc)
		s.appendLog(doc, "spot updated: %s", spot.ID)
		out = *spot
		return nil
	})
	if err != nil {
		return domain.Spot{}, err
	}
	return out, nil
}

// AllSpots returns the spot collection with decay applied; demotions are
// persisted, not just computed for the response.
func (s *Service) AllSpots(ctx context.Context) ([]domain.Spot, error) {
	var out []domain.Spot
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		s.applyDecay(doc)
		out = append([]domain.Spot{}, doc.Spots...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResetMapData wipes every spot. Irreversible, logged.
func (s *Service) ResetMapData(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		n := len(doc.Spots)
		doc.Spots = []domain.Spot{}
		s.appendLog(doc, "map data reset, %d spots removed", n)
		return nil
	})
	return err
}
