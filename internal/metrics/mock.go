package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	calcRuns            int
	scorecardsDelivered int
	calcDurations       []float64
	pollTicks           int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		calcDurations: make([]float64, 0),
	}
}

func (m *Mock) IncCalcRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calcRuns++
}

func (m *Mock) IncScorecardsDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scorecardsDelivered++
}

func (m *Mock) ObserveCalcDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calcDurations = append(m.calcDurations, duration)
}

func (m *Mock) IncPollTicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollTicks++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// CalcRuns returns the number of times IncCalcRuns was called.
func (m *Mock) CalcRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calcRuns
}

// ScorecardsDelivered returns the number of times IncScorecardsDelivered was called.
func (m *Mock) ScorecardsDelivered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scorecardsDelivered
}

// PollTicks returns the number of times IncPollTicks was called.
func (m *Mock) PollTicks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollTicks
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
