package leaderboard

import (
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
)

// TiedPlayerIDs returns the ids of every delivered player whose exact net
// score is shared with at least one other delivered player. Rows without a
// net score never tie.
func TiedPlayerIDs(scores []frutales.Score) map[int64]bool {
	byNeto := make(map[float64][]int64)
	for _, score := range scores {
		if score.Status != scorecard.StatusDelivered || score.ScoreNeto == nil {
			continue
		}
		byNeto[*score.ScoreNeto] = append(byNeto[*score.ScoreNeto], score.PlayerID)
	}

	tied := make(map[int64]bool)
	for _, ids := range byNeto {
		if len(ids) > 1 {
			for _, id := range ids {
				tied[id] = true
			}
		}
	}
	return tied
}

// StatusLabel returns the roster annotation for a row: "DS" for disqualified
// players, "NM" for players with a scorecard that was never delivered, and
// the empty string otherwise.
func StatusLabel(status scorecard.Status, hasScorecard bool) string {
	switch {
	case status == scorecard.StatusDisqualified:
		return "DS"
	case !hasScorecard:
		return ""
	case status != scorecard.StatusDelivered:
		return "NM"
	}
	return ""
}
