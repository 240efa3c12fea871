package scorecard

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetOrCreateFunc      func(tournamentID, playerID int64, handicapCourse *float64, holes []HolePlan) (*Scorecard, error)
	GetByIDFunc          func(scorecardID int64) (*Scorecard, error)
	ListByTournamentFunc func(tournamentID int64) ([]Scorecard, error)
	UpdateHoleScoresFunc func(scorecardID int64, updates []HoleScoreUpdate) error
	DeliverFunc          func(scorecardID int64) error
	DisqualifyFunc       func(scorecardID int64) error
	UndoDisqualifyFunc   func(scorecardID int64) error
	CancelInProgressFunc func(tournamentID int64) (int64, error)

	// Call records
	DeliverCalls          []int64
	DisqualifyCalls       []int64
	UndoDisqualifyCalls   []int64
	CancelInProgressCalls []int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetOrCreate(tournamentID, playerID int64, handicapCourse *float64, holes []HolePlan) (*Scorecard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(tournamentID, playerID, handicapCourse, holes)
	}
	return nil, nil
}

func (m *MockStore) GetByID(scorecardID int64) (*Scorecard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(scorecardID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListByTournament(tournamentID int64) ([]Scorecard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListByTournamentFunc != nil {
		return m.ListByTournamentFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) UpdateHoleScores(scorecardID int64, updates []HoleScoreUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateHoleScoresFunc != nil {
		return m.UpdateHoleScoresFunc(scorecardID, updates)
	}
	return nil
}

func (m *MockStore) Deliver(scorecardID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeliverCalls = append(m.DeliverCalls, scorecardID)
	if m.DeliverFunc != nil {
		return m.DeliverFunc(scorecardID)
	}
	return nil
}

func (m *MockStore) Disqualify(scorecardID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DisqualifyCalls = append(m.DisqualifyCalls, scorecardID)
	if m.DisqualifyFunc != nil {
		return m.DisqualifyFunc(scorecardID)
	}
	return nil
}

func (m *MockStore) UndoDisqualify(scorecardID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UndoDisqualifyCalls = append(m.UndoDisqualifyCalls, scorecardID)
	if m.UndoDisqualifyFunc != nil {
		return m.UndoDisqualifyFunc(scorecardID)
	}
	return nil
}

func (m *MockStore) CancelInProgress(tournamentID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelInProgressCalls = append(m.CancelInProgressCalls, tournamentID)
	if m.CancelInProgressFunc != nil {
		return m.CancelInProgressFunc(tournamentID)
	}
	return 0, nil
}
