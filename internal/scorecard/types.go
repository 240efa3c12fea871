package scorecard

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a requested scorecard does not exist.
	ErrNotFound = errors.New("scorecard not found")
	// ErrInvalidTransition is returned when a status change is not allowed
	// by the scorecard state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrIncompleteScores is returned when delivering a scorecard that still
	// has empty own-stroke cells.
	ErrIncompleteScores = errors.New("scorecard has incomplete scores")
)

// Status is the lifecycle state of a scorecard.
//
// IN_PROGRESS -> DELIVERED via an explicit deliver action.
// IN_PROGRESS -> DISQUALIFIED manually; undo restores the previous status.
// IN_PROGRESS -> CANCELLED when the tournament is finalized.
// A DELIVERED card never reverts silently.
type Status string

const (
	StatusInProgress   Status = "IN_PROGRESS"
	StatusDelivered    Status = "DELIVERED"
	StatusDisqualified Status = "DISQUALIFIED"
	StatusCancelled    Status = "CANCELLED"
)

// store handles all database operations for scorecards.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// HoleScore is one hole's entry on a scorecard. OwnStrokes nil means the
// cell has not been filled yet, which is distinct from zero.
type HoleScore struct {
	ID            int64 `json:"id"`
	HoleID        int64 `json:"holeId"`
	HoleNumber    int   `json:"holeNumber"`
	Par           int   `json:"par"`
	OwnStrokes    *int  `json:"ownStrokes,omitempty"`
	MarkerStrokes *int  `json:"markerStrokes,omitempty"`
}

// Scorecard is the per-player, per-tournament stroke record.
type Scorecard struct {
	ID             int64       `json:"id"`
	TournamentID   int64       `json:"tournamentId"`
	PlayerID       int64       `json:"playerId"`
	HandicapCourse *float64    `json:"handicapCourse,omitempty"`
	Status         Status      `json:"status"`
	DeliveredAt    *int64      `json:"deliveredAt,omitempty"`
	HoleScores     []HoleScore `json:"holeScores"`
}

// Gross sums the filled own-stroke cells. Returns nil when no cell is filled.
func (c *Scorecard) Gross() *int {
	total := 0
	filled := false
	for _, hs := range c.HoleScores {
		if hs.OwnStrokes != nil {
			total += *hs.OwnStrokes
			filled = true
		}
	}
	if !filled {
		return nil
	}
	return &total
}

// Net is gross minus the course handicap. A missing handicap counts as zero.
func (c *Scorecard) Net() *float64 {
	gross := c.Gross()
	if gross == nil {
		return nil
	}
	hcp := 0.0
	if c.HandicapCourse != nil {
		hcp = *c.HandicapCourse
	}
	net := float64(*gross) - hcp
	return &net
}

// HoleScoreUpdate carries one hole's new values for a bulk update.
type HoleScoreUpdate struct {
	HoleID        int64 `json:"holeId"`
	OwnStrokes    *int  `json:"ownStrokes,omitempty"`
	MarkerStrokes *int  `json:"markerStrokes,omitempty"`
}

// HolePlan describes the holes a new scorecard is created with.
type HolePlan struct {
	HoleID int64
	Number int
	Par    int
}
