// Package store is the durable document layer: whole-document load and
// save over the kv medium, plus the separate ephemeral session key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"cleanspot/internal/clock"
	"cleanspot/internal/core/kv"
	"cleanspot/internal/domain"
	"cleanspot/internal/schema"
	"cleanspot/pkg/utils"
)

const (
	docKey     = "cleanspot:data"
	sessionKey = "cleanspot:session"
)

type Store struct {
	kv    kv.Store
	clk   *clock.Clock
	newID utils.IDGen
	log   *zap.Logger

	// Serializes every load-mutate-save cycle. The model is single-writer
	// last-write-wins; the mutex closes the two-rapid-calls race without
	// changing single-caller behavior.
	mu sync.Mutex
}

func New(kvs kv.Store, clk *clock.Clock, newID utils.IDGen, log *zap.Logger) *Store {
	if newID == nil {
		newID = utils.NewID
	}
	return &Store{kv: kvs, clk: clk, newID: newID, log: log}
}

// Load returns the current document. First-ever access seeds the document
// (one admin account) and persists it; malformed persisted state is
// replaced by a fresh seed rather than surfaced; an old schema version is
// migrated and the healed result written back immediately.
func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	raw, err := s.kv.Get(ctx, docKey)
	if errors.Is(err, kv.ErrNotFound) {
		doc := schema.Seed(s.clk.Wall(), s.newID)
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		s.log.Info("seeded fresh document", zap.String("admin", schema.AdminEmail))
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("persisted document malformed, reseeding", zap.Error(err))
		fresh := schema.Seed(s.clk.Wall(), s.newID)
		if err := s.Save(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}

	changed := schema.Migrate(&doc)
	if schema.EnsureAdmin(&doc, s.clk.Wall(), s.newID) {
		changed = true
	}
	if changed {
		if err := s.Save(ctx, &doc); err != nil {
			return nil, err
		}
		s.log.Info("document migrated", zap.Int("schemaVersion", doc.SchemaVersion))
	}
	return &doc, nil
}

// Save overwrites the entire persisted document. Single-key set semantics
// of the medium make this atomic from the caller's perspective.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, docKey, raw)
}

// Update runs one serialized load-mutate-save cycle. If mutate returns an
// error nothing is persisted; the operation fully applies or fully fails.
func (s *Store) Update(ctx context.Context, mutate func(doc *domain.Document) error) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := mutate(doc); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Reset discards the document, reseeds it and clears the session.
func (s *Store) Reset(ctx context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := schema.Seed(s.clk.Wall(), s.newID)
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.ClearSession(ctx); err != nil {
		return nil, err
	}
	s.log.Info("document reset", zap.String("admin", schema.AdminEmail))
	return doc, nil
}

// LoadSession returns the active session, or nil when absent or unreadable.
func (s *Store) LoadSession(ctx context.Context) (*domain.Session, error) {
	raw, err := s.kv.Get(ctx, sessionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, sessionKey, raw)
}

func (s *Store) ClearSession(ctx context.Context) error {
	return s.kv.Del(ctx, sessionKey)
}
