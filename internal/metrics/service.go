package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CalcRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_score_calculation_runs_total",
			Help: "The total number of Frutales point calculation runs.",
		}),
		ScorecardsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_scorecards_delivered_total",
			Help: "The total number of scorecards delivered.",
		}),
		CalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "golf_score_calculation_duration_seconds",
			Help:    "The duration of individual point calculation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PollTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_poller_ticks_total",
			Help: "The total number of recalculation poller ticks.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "golf_startup_time_seconds",
			Help: "The time it took for the application to start up.",
		}),
	}

	reg.MustRegister(
		s.CalcRuns,
		s.ScorecardsDelivered,
		s.CalcDuration,
		s.PollTicks,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCalcRuns() {
	s.CalcRuns.Inc()
}

func (s *Service) IncScorecardsDelivered() {
	s.ScorecardsDelivered.Inc()
}

func (s *Service) ObserveCalcDuration(duration float64) {
	s.CalcDuration.Observe(duration)
}

func (s *Service) IncPollTicks() {
	s.PollTicks.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
