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

type Server struct {
	Tournaments    tournament.Store
	Scorecards     scorecard.Store
	Frutales       *frutales.Service
	Leaderboard    *leaderboard.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
