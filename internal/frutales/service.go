package frutales

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/fergarri/golf-tournament-app/internal/metrics"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Service orchestrates point calculation: it loads the tournament's cards and
// players, runs Compute and persists the result.
type Service struct {
	tournaments tournament.Store
	scorecards  scorecard.Store
	scores      Store
	metrics     metrics.Metrics
	counters    metrics.MetricsStore
}

// NewService creates a new calculation service.
func NewService(tournaments tournament.Store, scorecards scorecard.Store, scores Store, m metrics.Metrics, counters metrics.MetricsStore) *Service {
	return &Service{
		tournaments: tournaments,
		scorecards:  scorecards,
		scores:      scores,
		metrics:     m,
		counters:    counters,
	}
}

// Calculate recomputes and stores all Frutales points for a tournament and
// returns the refreshed standings. It returns ErrNotFrutales for tournaments
// of any other tipo.
func (s *Service) Calculate(tournamentID int64) ([]Score, error) {
	start := time.Now()

	t, err := s.tournaments.GetTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Tipo != tournament.TipoFrutales {
		return nil, ErrNotFrutales
	}

	cards, err := s.scorecards.ListByTournament(tournamentID)
	if err != nil {
		return nil, err
	}

	cardData := make([]CardData, 0, len(cards))
	for _, card := range cards {
		player, err := s.tournaments.GetPlayer(card.PlayerID)
		if err != nil {
			log.Warn("Skipping scorecard with unknown player", "scorecardID", card.ID, "playerID", card.PlayerID, "error", err)
			continue
		}
		cardData = append(cardData, CardData{Card: card, Player: *player})
	}

	results := Compute(cardData, t.DoublePoints)
	if err := s.scores.ReplaceScores(tournamentID, results); err != nil {
		return nil, err
	}

	s.metrics.IncCalcRuns()
	s.metrics.ObserveCalcDuration(time.Since(start).Seconds())
	if s.counters != nil {
		s.counters.Increment("frutales_calc_runs")
	}
	log.Info("Frutales scores calculated",
		"tournamentID", tournamentID,
		"cards", len(cardData),
		"doublePoints", t.DoublePoints,
		"duration", time.Since(start))

	return s.scores.GetScores(tournamentID)
}

// GetScores returns the stored standings for a tournament.
func (s *Service) GetScores(tournamentID int64) ([]Score, error) {
	return s.scores.GetScores(tournamentID)
}
