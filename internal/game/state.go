// Package game implements the typing session engine: state transitions,
// per-keystroke diffing, metrics, smart Enter handling and word pulses.
package game

import "time"

// Status is the lifecycle stage of a typing session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// State is a snapshot of one typing session. Update methods never mutate the
// receiver; they return the next snapshot.
type State struct {
	Status         Status
	Target         []rune
	Input          []rune
	StartedAt      time.Time
	CompletedAt    time.Time
	Mistakes       int
	MistakeIndices IndexSet
}

// Start returns an idle session for the given target text.
func Start(target string) State {
	return State{
		Status:         StatusIdle,
		Target:         []rune(target),
		MistakeIndices: IndexSet{},
	}
}

// Submit replaces the typed text and recomputes derived fields.
// It is a no-op for an empty target or a completed session.
func (s State) Submit(input string, now time.Time) State {
	if len(s.Target) == 0 || s.Status == StatusCompleted {
		return s
	}
	runes := []rune(input)
	if len(runes) > len(s.Target) {
		runes = runes[:len(s.Target)]
	}

	next := s
	next.Input = runes
	next.Mistakes, next.MistakeIndices = ComputeMistakes(s.Target, runes)
	if next.StartedAt.IsZero() && len(runes) > 0 {
		next.StartedAt = now
	}
	switch {
	case len(runes) >= len(s.Target):
		next.Status = StatusCompleted
		next.CompletedAt = now
	case !next.StartedAt.IsZero():
		next.Status = StatusRunning
	}
	return next
}

// Reset clears progress but keeps the target so the snippet can be retried.
func (s State) Reset() State {
	return Start(string(s.Target))
}

// Typed returns the typed text.
func (s State) Typed() string {
	return string(s.Input)
}

// Progress returns the typed share of the target in whole percent.
func (s State) Progress() int {
	if len(s.Target) == 0 {
		return 0
	}
	return len(s.Input) * 100 / len(s.Target)
}

// Result summarizes a completed session. Elapsed is zero until completion.
func (s State) Result() Result {
	var elapsed time.Duration
	if !s.StartedAt.IsZero() && !s.CompletedAt.IsZero() {
		elapsed = s.CompletedAt.Sub(s.StartedAt)
	}
	return newResult(len(s.Input), s.Mistakes, elapsed)
}

// Live summarizes the session as of now, for in-progress feedback.
func (s State) Live(now time.Time) Result {
	if s.Status == StatusCompleted {
		return s.Result()
	}
	var elapsed time.Duration
	if !s.StartedAt.IsZero() {
		elapsed = now.Sub(s.StartedAt)
	}
	return newResult(len(s.Input), s.Mistakes, elapsed)
}
