package leaderboard

import (
	"sort"
	"strings"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Merge builds the display roster for a Frutales event from three sources:
// calculated scores, raw leaderboard entries and the inscription list. Every
// inscribed player appears exactly once; calculated fields win over entry
// fields, which win over inscription identity data. Players with neither a
// scorecard nor a calculated score are shown as IN_PROGRESS with no scores.
//
// Ordering: when no calculated scores exist, all rows sort alphabetically by
// player name. Otherwise calculated rows keep their calculated order, then
// inscribed-but-uncalculated rows follow sorted by name, then calculated rows
// without a matching inscription.
func Merge(scores []frutales.Score, entries []Entry, inscriptions []tournament.Inscription) ([]frutales.Score, error) {
	if scores == nil || entries == nil || inscriptions == nil {
		return nil, ErrInvalidInput
	}

	scoreByPlayer := make(map[int64]frutales.Score, len(scores))
	for _, score := range scores {
		if _, ok := scoreByPlayer[score.PlayerID]; !ok {
			scoreByPlayer[score.PlayerID] = score
		}
	}
	entryByPlayer := make(map[int64]Entry, len(entries))
	for _, entry := range entries {
		if _, ok := entryByPlayer[entry.PlayerID]; !ok {
			entryByPlayer[entry.PlayerID] = entry
		}
	}

	// Duplicate inscriptions collapse to the first occurrence per player.
	seen := make(map[int64]bool, len(inscriptions))
	merged := make(map[int64]frutales.Score, len(inscriptions))
	order := make([]int64, 0, len(inscriptions))
	for _, ins := range inscriptions {
		playerID := ins.Player.ID
		if seen[playerID] {
			continue
		}
		seen[playerID] = true
		merged[playerID] = mergeRow(ins, scoreByPlayer, entryByPlayer)
		order = append(order, playerID)
	}

	if len(scores) == 0 {
		result := make([]frutales.Score, 0, len(order))
		for _, id := range order {
			result = append(result, merged[id])
		}
		sortByPlayerName(result)
		return result, nil
	}

	calculatedIDs := make(map[int64]bool, len(scores))
	result := make([]frutales.Score, 0, len(order)+len(scores))
	for _, score := range scores {
		calculatedIDs[score.PlayerID] = true
		if row, ok := merged[score.PlayerID]; ok {
			result = append(result, row)
		}
	}

	missing := make([]frutales.Score, 0)
	for _, id := range order {
		if !calculatedIDs[id] {
			missing = append(missing, merged[id])
		}
	}
	sortByPlayerName(missing)
	result = append(result, missing...)

	// Calculated rows whose inscription disappeared still show up, last.
	for _, score := range scores {
		if _, ok := merged[score.PlayerID]; !ok {
			result = append(result, score)
		}
	}

	return result, nil
}

// mergeRow builds one roster row for an inscribed player, field by field:
// calculated score first, leaderboard entry second, inscription data last.
func mergeRow(ins tournament.Inscription, scoreByPlayer map[int64]frutales.Score, entryByPlayer map[int64]Entry) frutales.Score {
	playerID := ins.Player.ID
	calculated, hasCalculated := scoreByPlayer[playerID]
	entry, hasEntry := entryByPlayer[playerID]

	row := frutales.Score{
		PlayerID: playerID,
		Status:   scorecard.StatusInProgress,
	}
	if hasCalculated {
		row = calculated
	} else if hasEntry {
		row.ScorecardID = entry.ScorecardID
		row.ScoreGross = entry.ScoreGross
		row.ScoreNeto = entry.ScoreNeto
		if entry.Status != "" {
			row.Status = entry.Status
		}
	}

	if row.PlayerName == "" {
		row.PlayerName = ins.Player.DisplayName()
	}
	if row.Matricula == "" {
		row.Matricula = ins.Player.Matricula
	}
	if row.ScorecardID == nil && hasEntry {
		row.ScorecardID = entry.ScorecardID
	}
	if row.HandicapIndex == nil {
		row.HandicapIndex = ins.Player.HandicapIndex
	}
	if row.HandicapCourse == nil {
		if hasEntry && entry.HandicapCourse != nil {
			row.HandicapCourse = entry.HandicapCourse
		} else {
			row.HandicapCourse = ins.HandicapCourse
		}
	}

	// No scorecard from either source: the player is still warming up.
	if row.ScorecardID == nil && !hasCalculated {
		row.Status = scorecard.StatusInProgress
		row.ScoreGross = nil
		row.ScoreNeto = nil
	}

	return row
}

func sortByPlayerName(rows []frutales.Score) {
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].PlayerName) < strings.ToLower(rows[j].PlayerName)
	})
}
