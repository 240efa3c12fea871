package leaderboard

import (
	"errors"

	"github.com/fergarri/golf-tournament-app/internal/scorecard"
)

// ErrInvalidInput is returned by Merge when one of its input collections is
// nil. Empty collections are valid, absent ones are not.
var ErrInvalidInput = errors.New("leaderboard input collections must not be nil")

// Entry is one raw leaderboard row: every inscribed player appears, with
// score fields filled only when their scorecard was delivered.
type Entry struct {
	ScorecardID    *int64           `json:"scorecardId,omitempty"`
	PlayerID       int64            `json:"playerId"`
	PlayerName     string           `json:"playerName"`
	Matricula      string           `json:"matricula"`
	HandicapCourse *float64         `json:"handicapCourse,omitempty"`
	ScoreGross     *int             `json:"scoreGross,omitempty"`
	ScoreNeto      *float64         `json:"scoreNeto,omitempty"`
	Status         scorecard.Status `json:"status"`
}
