package leaderboard

import (
	"sort"
	"strings"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Service assembles leaderboards and rosters from the stores.
type Service struct {
	tournaments tournament.Store
	scorecards  scorecard.Store
	scores      frutales.Store
}

// NewService creates a new leaderboard service.
func NewService(tournaments tournament.Store, scorecards scorecard.Store, scores frutales.Store) *Service {
	return &Service{
		tournaments: tournaments,
		scorecards:  scorecards,
		scores:      scores,
	}
}

// BuildEntries returns one raw leaderboard row per inscribed player.
// Delivered players carry computed gross and net and sort by net ascending;
// everyone else follows, sorted by name, without score fields.
func (s *Service) BuildEntries(tournamentID int64) ([]Entry, error) {
	inscriptions, err := s.tournaments.GetInscriptions(tournamentID)
	if err != nil {
		return nil, err
	}
	cards, err := s.scorecards.ListByTournament(tournamentID)
	if err != nil {
		return nil, err
	}

	cardByPlayer := make(map[int64]scorecard.Scorecard, len(cards))
	for _, card := range cards {
		cardByPlayer[card.PlayerID] = card
	}

	var delivered, undelivered []Entry
	seen := make(map[int64]bool, len(inscriptions))
	for _, ins := range inscriptions {
		playerID := ins.Player.ID
		if seen[playerID] {
			continue
		}
		seen[playerID] = true

		entry := Entry{
			PlayerID:   playerID,
			PlayerName: ins.Player.DisplayName(),
			Matricula:  ins.Player.Matricula,
			Status:     scorecard.StatusInProgress,
		}

		card, hasCard := cardByPlayer[playerID]
		if hasCard {
			entry.ScorecardID = &card.ID
			entry.Status = card.Status
		}

		if hasCard && card.Status == scorecard.StatusDelivered {
			entry.ScoreGross = card.Gross()
			entry.ScoreNeto = card.Net()
			entry.HandicapCourse = card.HandicapCourse
			delivered = append(delivered, entry)
			continue
		}

		// Fallback handicap: inscription first, then the card if one exists.
		if ins.HandicapCourse != nil {
			entry.HandicapCourse = ins.HandicapCourse
		} else if hasCard {
			entry.HandicapCourse = card.HandicapCourse
		}
		undelivered = append(undelivered, entry)
	}

	sort.SliceStable(delivered, func(i, j int) bool {
		netI, netJ := 9999.0, 9999.0
		if delivered[i].ScoreNeto != nil {
			netI = *delivered[i].ScoreNeto
		}
		if delivered[j].ScoreNeto != nil {
			netJ = *delivered[j].ScoreNeto
		}
		return netI < netJ
	})
	sort.SliceStable(undelivered, func(i, j int) bool {
		return strings.ToLower(undelivered[i].PlayerName) < strings.ToLower(undelivered[j].PlayerName)
	})

	return append(delivered, undelivered...), nil
}

// Roster returns the merged Frutales roster plus the set of tied player ids.
func (s *Service) Roster(tournamentID int64) ([]frutales.Score, map[int64]bool, error) {
	scores, err := s.scores.GetScores(tournamentID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.BuildEntries(tournamentID)
	if err != nil {
		return nil, nil, err
	}
	inscriptions, err := s.tournaments.GetInscriptions(tournamentID)
	if err != nil {
		return nil, nil, err
	}

	// Stores report empty result sets as nil slices; Merge requires present
	// collections.
	if scores == nil {
		scores = []frutales.Score{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	if inscriptions == nil {
		inscriptions = []tournament.Inscription{}
	}

	roster, err := Merge(scores, entries, inscriptions)
	if err != nil {
		return nil, nil, err
	}
	return roster, TiedPlayerIDs(roster), nil
}
