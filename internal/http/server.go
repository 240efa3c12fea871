package http

import (
	"net/http"

	"github.com/fergarri/golf-tournament-app/internal/config"
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/leaderboard"
	"github.com/fergarri/golf-tournament-app/internal/metrics"
	"github.com/fergarri/golf-tournament-app/internal/notifier"
	"github.com/fergarri/golf-tournament-app/internal/pubsub"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

func NewServer(tournaments tournament.Store, scorecards scorecard.Store, frutalesSvc *frutales.Service, leaderboardSvc *leaderboard.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tournaments:    tournaments,
		Scorecards:     scorecards,
		Frutales:       frutalesSvc,
		Leaderboard:    leaderboardSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/courses", Chain(s.CreateCourseHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments", Chain(s.TournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/activate", Chain(s.ActivateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/finalize", Chain(s.FinalizeTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/inscriptions", Chain(s.InscriptionsHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/frutales/scores", Chain(s.FrutalesScoresHandler(), paramsMiddleware))
	s.Router.Handle("/frutales/calculate", Chain(s.CalculateScoresHandler(), paramsMiddleware))
	s.Router.Handle("/frutales/roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards", Chain(s.ScorecardsHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards/scores", Chain(s.UpdateHoleScoresHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards/deliver", Chain(s.DeliverScorecardHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards/disqualify", Chain(s.DisqualifyScorecardHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards/undo-disqualify", Chain(s.UndoDisqualifyScorecardHandler(), paramsMiddleware))
	s.Router.Handle("/notify-results", Chain(s.NotifyResultsHandler(), paramsMiddleware))
	s.Router.Handle("/notify-standings", Chain(s.NotifyStandingsHandler(), paramsMiddleware))
	s.Router.Handle("/slack/commands/results", Chain(s.ResultsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
