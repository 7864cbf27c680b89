// Package service implements the domain operations over the document
// store: user lifecycle, spot lifecycle, cleanup recording, stats,
// leaderboard and settings. Every mutating operation runs one serialized
// load-mutate-save cycle and appends an audit log entry.
package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"cleanspot/internal/clock"
	"cleanspot/internal/core/cache"
	"cleanspot/internal/domain"
	"cleanspot/internal/store"
	"cleanspot/pkg/utils"
)

const (
	basePoints        = 50
	premiumMultiplier = 2

	// Claimed spots revert to unverified after this much inactivity,
	// measured from updatedAt.
	decayWindow = 7 * 24 * time.Hour

	// Encoded image payloads (data URLs) are capped per side.
	maxImageBytes = 2 << 20

	statsLogLimit = 10

	leaderboardKey = "leaderboard"
	leaderboardTTL = 2 * time.Second
)

type Service struct {
	store *store.Store
	clk   *clock.Clock
	newID utils.IDGen
	log   *zap.Logger
	cache *cache.Cache
}

func New(st *store.Store, clk *clock.Clock, newID utils.IDGen, log *zap.Logger) *Service {
	if newID == nil {
		newID = utils.NewID
	}
	return &Service{
		store: st,
		clk:   clk,
		newID: newID,
		log:   log,
		cache: cache.New(),
	}
}

// SchemaVersion reports the current persisted document version.
func (s *Service) SchemaVersion() int { return domain.CurrentSchemaVersion }

// appendLog grows the audit trail. Timestamps go through the offset clock
// like every other timestamp the system produces.
func (s *Service) appendLog(doc *domain.Document, format string, args ...any) {
	doc.Log = append(doc.Log, domain.LogEntry{
		ID:        s.newID(),
		Timestamp: s.clk.Now(doc),
		Message:   fmt.Sprintf(format, args...),
	})
}

// invalidate drops derived views after any successful save.
func (s *Service) invalidate() {
	s.cache.Invalidate(leaderboardKey)
}
