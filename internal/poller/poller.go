package poller

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/metrics"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Calculator recomputes the standings of one tournament.
type Calculator interface {
	Calculate(tournamentID int64) ([]frutales.Score, error)
}

// Poller periodically recalculates every active Frutales tournament so the
// public leaderboard stays fresh without manual calculation requests.
type Poller struct {
	tournaments tournament.Store
	calculator  Calculator
	metrics     metrics.Metrics
	interval    time.Duration
	stop        chan struct{}
	done        chan struct{}
}

// New creates a new Poller. It does not start polling until Start is called.
func New(tournaments tournament.Store, calculator Calculator, m metrics.Metrics, interval time.Duration) *Poller {
	return &Poller{
		tournaments: tournaments,
		calculator:  calculator,
		metrics:     m,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the polling loop in a background goroutine.
func (p *Poller) Start() {
	log.Info("Starting recalculation poller", "interval", p.interval)
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.RunOnce()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop terminates the polling loop and waits for it to finish.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
	log.Info("Recalculation poller stopped")
}

// RunOnce recalculates every active Frutales tournament.
func (p *Poller) RunOnce() {
	p.metrics.IncPollTicks()

	tournaments, err := p.tournaments.ListActiveFrutales()
	if err != nil {
		log.Error("Failed to list active tournaments", "error", err)
		return
	}
	if len(tournaments) == 0 {
		log.Debug("No active Frutales tournaments to recalculate")
		return
	}

	for _, t := range tournaments {
		if _, err := p.calculator.Calculate(t.ID); err != nil {
			log.Error("Failed to recalculate scores", "error", err, "tournamentID", t.ID, "name", t.Name)
		}
	}
	log.Debug("Recalculated active tournaments", "count", len(tournaments))
}
