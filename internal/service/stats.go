package service

import (
	"context"
	"encoding/json"
	"sort"

	"cleanspot/internal/domain"
)

// Stats is the dashboard aggregate. NewUsers is all non-admin users, not a
// time-windowed count; the historical JSON name is kept.
type Stats struct {
	VerifiedSpots int               `json:"verifiedSpots"`
	NewUsers      int               `json:"newUsers"`
	PremiumUsers  int               `json:"premiumUsers"`
	RecentLog     []domain.LogEntry `json:"recentLog"`
}

// GetStats aggregates counts after applying decay; any demotion is
// persisted as a side effect of the read.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	var out Stats
	_, err := s.store.Update(ctx, func(doc *domain.Document) error {
		s.applyDecay(doc)

		for _, spot := range doc.Spots {
			if spot.Status == domain.SpotVerified || spot.Status == domain.SpotPremium {
				out.VerifiedSpots++
			}
		}
		for _, u := range doc.Users {
			if u.Role != domain.RoleAdmin {
				out.NewUsers++
			}
			if u.IsPremium {
				out.PremiumUsers++
			}
		}

		// Most recent entries first, capped for the view; storage keeps
		// the full trail.
		n := len(doc.Log)
		limit := statsLogLimit
		if n < limit {
			limit = n
		}
		out.RecentLog = make([]domain.LogEntry, 0, limit)
		for i := n - 1; i >= n-limit; i-- {
			out.RecentLog = append(out.RecentLog, doc.Log[i])
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return out, nil
}

// Leaderboard is all non-banned users by points descending, ties keeping
// input order. Served through a short-TTL singleflight cache that every
// mutating operation invalidates.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.PublicUser, error) {
	raw, err := s.cache.GetOrLoad(ctx, leaderboardKey, leaderboardTTL, func(ctx context.Context) ([]byte, error) {
		doc, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		board := make([]domain.PublicUser, 0, len(doc.Users))
		for i := range doc.Users {
			if doc.Users[i].Banned {
				continue
			}
			board = append(board, doc.Users[i].Sanitize())
		}
		sort.SliceStable(board, func(i, j int) bool {
			return board[i].Points > board[j].Points
		})
		return json.Marshal(board)
	})
	if err != nil {
		return nil, err
	}
	var board []domain.PublicUser
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, err
	}
	return board, nil
}
