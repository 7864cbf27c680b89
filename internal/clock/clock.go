// Package clock computes the possibly offset "current time" every
// timestamp-producing operation uses. Shifting settings.nowOffsetDays ages
// all future-computed timestamps at once without touching stored ones.
package clock

import (
	"time"

	"cleanspot/internal/domain"
)

// Source is the wall clock, injectable for tests.
type Source interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time { return time.Now().UTC() }

type Clock struct {
	src Source
}

func New(src Source) *Clock {
	if src == nil {
		src = system{}
	}
	return &Clock{src: src}
}

// Now is wall time shifted by the document's simulated offset. Day
// granularity only; the offset may be negative.
func (c *Clock) Now(doc *domain.Document) time.Time {
	return c.src.Now().AddDate(0, 0, doc.Settings.NowOffsetDays)
}

// Wall is the unshifted source time, used before a document is available.
func (c *Clock) Wall() time.Time { return c.src.Now() }
