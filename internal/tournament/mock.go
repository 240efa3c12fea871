package tournament

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc        func(player *Player) error
	GetPlayerFunc           func(playerID int64) (*Player, error)
	GetAllPlayersFunc       func() ([]Player, error)
	CreateCourseFunc        func(name string, holes []Hole) (int64, error)
	GetCourseHolesFunc      func(courseID int64) ([]Hole, error)
	CreateTournamentFunc    func(t *Tournament) error
	GetTournamentFunc       func(tournamentID int64) (*Tournament, error)
	GetTournamentByCodFunc  func(codigo string) (*Tournament, error)
	ListTournamentsFunc     func() ([]Tournament, error)
	ListActiveFrutalesFunc  func() ([]Tournament, error)
	SetTournamentEstadoFunc func(tournamentID int64, estado string) error
	AddInscriptionFunc      func(tournamentID, playerID int64, handicapCourse *float64) (int64, error)
	GetInscriptionsFunc     func(tournamentID int64) ([]Inscription, error)
	ClearFunc               func()

	// Call records
	SetTournamentEstadoCalls []struct {
		TournamentID int64
		Estado       string
	}
	AddInscriptionCalls []struct {
		TournamentID int64
		PlayerID     int64
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(player *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(player)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID int64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) CreateCourse(name string, holes []Hole) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateCourseFunc != nil {
		return m.CreateCourseFunc(name, holes)
	}
	return 0, nil
}

func (m *MockStore) GetCourseHoles(courseID int64) ([]Hole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCourseHolesFunc != nil {
		return m.GetCourseHolesFunc(courseID)
	}
	return nil, nil
}

func (m *MockStore) CreateTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(tournamentID int64) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetTournamentByCodigo(codigo string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentByCodFunc != nil {
		return m.GetTournamentByCodFunc(codigo)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListTournaments() ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) ListActiveFrutales() ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListActiveFrutalesFunc != nil {
		return m.ListActiveFrutalesFunc()
	}
	return nil, nil
}

func (m *MockStore) SetTournamentEstado(tournamentID int64, estado string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTournamentEstadoCalls = append(m.SetTournamentEstadoCalls, struct {
		TournamentID int64
		Estado       string
	}{tournamentID, estado})
	if m.SetTournamentEstadoFunc != nil {
		return m.SetTournamentEstadoFunc(tournamentID, estado)
	}
	return nil
}

func (m *MockStore) AddInscription(tournamentID, playerID int64, handicapCourse *float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddInscriptionCalls = append(m.AddInscriptionCalls, struct {
		TournamentID int64
		PlayerID     int64
	}{tournamentID, playerID})
	if m.AddInscriptionFunc != nil {
		return m.AddInscriptionFunc(tournamentID, playerID, handicapCourse)
	}
	return 0, nil
}

func (m *MockStore) GetInscriptions(tournamentID int64) ([]Inscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetInscriptionsFunc != nil {
		return m.GetInscriptionsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
