// Package models defines the core domain entities for the draw dashboard.
//
// A Snapshot is the externally produced estimate document for one student's
// housing draw position: their raw draw order, how many people were initially
// scheduled ahead of them, how many of those are expected to draw into other
// housing pools, and the resulting single-room probability. Snapshots are
// immutable once loaded; everything the dashboard shows is derived from one.
package models

import "errors"

// Snapshot is a point-in-time position estimate for one student, as produced
// by the estimator and published as a JSON document. Field names match the
// document format. All counts are expected to be non-negative and
// ProbabilitySingle to sit in [0, 100]; the loader tolerates documents that
// violate this (see Validate for the check used where it matters).
type Snapshot struct {
	UserName    string `json:"userName"`    // Display name of the student
	PUID        string `json:"puid"`        // University ID, opaque
	DrawTime    string `json:"drawTime"`    // Assigned draw time, display string
	LastUpdated string `json:"lastUpdated"` // When the estimate was produced

	RawPosition  int `json:"rawPosition"`  // Raw draw-order rank
	InitialAhead int `json:"initialAhead"` // People initially scheduled ahead

	// Removal estimates: people ahead who are expected to take a spot in
	// another housing pool and drop out of competition.
	RemovedSpelman  int `json:"removedSpelman"`
	RemovedOtherRes int `json:"removedOtherRes"`

	// Assumption parameters behind the removal estimates. Display-only.
	SpelmanCapacity int `json:"spelmanCapacity"`
	OtherResTopN    int `json:"otherResTopN"`

	FinalPositionEstimate int `json:"finalPositionEstimate"` // InitialAhead minus removals, computed upstream
	AvailableSingles      int `json:"availableSingles"`      // Single rooms in the draw
	ProbabilitySingle     int `json:"probabilitySingle"`     // Percent chance of a single, [0, 100]
}

// DefaultSnapshot returns the fixed fallback shown when the estimate document
// cannot be loaded: zeroed counts and "N/A" display strings.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		UserName:    "N/A",
		PUID:        "N/A",
		DrawTime:    "N/A",
		LastUpdated: "N/A",
	}
}

// Validate checks the documented range invariants. The loader deliberately
// does not call this (malformed documents still render, zeroed); the
// estimator and storage do.
func (s *Snapshot) Validate() error {
	if s.RawPosition < 0 {
		return errors.New("raw position must not be negative")
	}
	if s.InitialAhead < 0 {
		return errors.New("initial ahead count must not be negative")
	}
	if s.RemovedSpelman < 0 || s.RemovedOtherRes < 0 {
		return errors.New("removal counts must not be negative")
	}
	if s.SpelmanCapacity < 0 || s.OtherResTopN < 0 {
		return errors.New("removal parameters must not be negative")
	}
	if s.FinalPositionEstimate < 0 {
		return errors.New("final position estimate must not be negative")
	}
	if s.AvailableSingles < 0 {
		return errors.New("available singles count must not be negative")
	}
	if s.ProbabilitySingle < 0 || s.ProbabilitySingle > 100 {
		return errors.New("single probability must be between 0 and 100")
	}
	return nil
}
