package frutales

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// ErrNotFrutales is returned when point calculation is requested for a
// tournament that is not of the FRUTALES tipo.
var ErrNotFrutales = errors.New("point calculation only applies to FRUTALES tournaments")

// store handles database operations for calculated scores.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Score is one player's calculated result for a single event: identity,
// round scores and the full point breakdown. Gross and net are only present
// for DELIVERED cards; point fields default to zero.
type Score struct {
	ScorecardID         *int64           `json:"scorecardId,omitempty"`
	PlayerID            int64            `json:"playerId"`
	PlayerName          string           `json:"playerName"`
	Matricula           string           `json:"matricula"`
	Position            *int             `json:"position,omitempty"`
	HandicapIndex       *float64         `json:"handicapIndex,omitempty"`
	HandicapCourse      *float64         `json:"handicapCourse,omitempty"`
	ScoreGross          *int             `json:"scoreGross,omitempty"`
	ScoreNeto           *float64         `json:"scoreNeto,omitempty"`
	Status              scorecard.Status `json:"status"`
	BirdieCount         int              `json:"birdieCount"`
	EagleCount          int              `json:"eagleCount"`
	AceCount            int              `json:"aceCount"`
	PositionPoints      int              `json:"positionPoints"`
	BirdiePoints        int              `json:"birdiePoints"`
	EaglePoints         int              `json:"eaglePoints"`
	AcePoints           int              `json:"acePoints"`
	ParticipationPoints int              `json:"participationPoints"`
	TotalPoints         int              `json:"totalPoints"`
}

// CardData pairs a scorecard with its player, the unit of input for Compute.
type CardData struct {
	Card   scorecard.Scorecard
	Player tournament.Player
}
