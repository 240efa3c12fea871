package notifier

import (
	"sync"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultsNotificationCalls []ResultsCall
	SendStandingsCalls           []ResultsCall

	// Spies
	SendResultsNotificationFunc func(t *tournament.Tournament, scores []frutales.Score, dryRun bool) error
	FormatResultsResponseFunc   func(t *tournament.Tournament, scores []frutales.Score) (any, error)
}

// ResultsCall holds the arguments of one notification call.
type ResultsCall struct {
	Tournament *tournament.Tournament
	Scores     []frutales.Score
	DryRun     bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultsNotificationCalls = nil
	m.SendStandingsCalls = nil
}

func (m *Mock) SendResultsNotification(t *tournament.Tournament, scores []frutales.Score, dryRun bool) error {
	m.mu.Lock()
	m.SendResultsNotificationCalls = append(m.SendResultsNotificationCalls, ResultsCall{Tournament: t, Scores: scores, DryRun: dryRun})
	m.mu.Unlock()
	if m.SendResultsNotificationFunc != nil {
		return m.SendResultsNotificationFunc(t, scores, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(t *tournament.Tournament, scores []frutales.Score, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, ResultsCall{Tournament: t, Scores: scores, DryRun: dryRun})
	return nil
}

func (m *Mock) FormatResultsResponse(t *tournament.Tournament, scores []frutales.Score) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatResultsResponseFunc != nil {
		return m.FormatResultsResponseFunc(t, scores)
	}
	return "formatted_results", nil
}
