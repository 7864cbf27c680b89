package handler

import "math/rand"

// Approver decides the simulated AI verification outcome. The decision is
// made here, at the presentation edge, and handed to the domain core as an
// opaque boolean; tests swap in a fixed implementation.
type Approver interface {
	Approve(rate float64) (approved bool, reason string)
}

type RandomApprover struct{}

func (RandomApprover) Approve(rate float64) (bool, string) {
	if rand.Float64() < rate {
		return true, "AI verification passed"
	}
	return false, "AI verification failed: cleanup not convincing enough"
}

// FixedApprover always returns the configured decision.
type FixedApprover struct {
	Approved bool
	Reason   string
}

func (f FixedApprover) Approve(float64) (bool, string) { return f.Approved, f.Reason }
