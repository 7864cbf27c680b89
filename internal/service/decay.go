package service

import "cleanspot/internal/domain"

// applyDecay demotes every spot whose updatedAt predates now minus the
// decay window back to unverified. Pure function of elapsed time: it does
// not care whether the spot was ever verified, and an approved cleanup
// resets the clock by touching updatedAt.
func (s *Service) applyDecay(doc *domain.Document) bool {
	cutoff := s.clk.Now(doc).Add(-decayWindow)
	changed := false
	for i := range doc.Spots {
		spot := &doc.Spots[i]
		if spot.UpdatedAt.Before(cutoff) && spot.Status != domain.SpotUnverified {
			spot.Status = domain.SpotUnverified
			changed = true
		}
	}
	return changed
}
