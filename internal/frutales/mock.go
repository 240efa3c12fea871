package frutales

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	ReplaceScoresFunc func(tournamentID int64, scores []Score) error
	GetScoresFunc     func(tournamentID int64) ([]Score, error)

	ReplaceScoresCalls []ReplaceScoresCall
}

// ReplaceScoresCall records a call to ReplaceScores.
type ReplaceScoresCall struct {
	TournamentID int64
	Scores       []Score
}

// NewMock creates a new mock store.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ReplaceScores(tournamentID int64, scores []Score) error {
	m.mu.Lock()
	m.ReplaceScoresCalls = append(m.ReplaceScoresCalls, ReplaceScoresCall{TournamentID: tournamentID, Scores: scores})
	m.mu.Unlock()
	if m.ReplaceScoresFunc != nil {
		return m.ReplaceScoresFunc(tournamentID, scores)
	}
	return nil
}

func (m *MockStore) GetScores(tournamentID int64) ([]Score, error) {
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(tournamentID)
	}
	return nil, nil
}
