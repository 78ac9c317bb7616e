// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Language   string
	Algorithm  string
	Linear     bool
	Random     bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Language    string
	Algorithm   string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	StartedAt   time.Time
	EndedAt     time.Time
	AlgorithmID string
	Language    string
	Linear      bool
	TypedChars  int
	Mistakes    int
	DurationMs  int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID   int64
	EndedAt     time.Time
	AlgorithmID string
	Language    string
	TypedChars  int
	Mistakes    int
	DurationMs  int64
}
