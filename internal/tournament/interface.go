package tournament

// Store defines the interface for interacting with tournament data.
type Store interface {
	UpsertPlayer(player *Player) error
	GetPlayer(playerID int64) (*Player, error)
	GetAllPlayers() ([]Player, error)
	CreateCourse(name string, holes []Hole) (int64, error)
	GetCourseHoles(courseID int64) ([]Hole, error)
	CreateTournament(t *Tournament) error
	GetTournament(tournamentID int64) (*Tournament, error)
	GetTournamentByCodigo(codigo string) (*Tournament, error)
	ListTournaments() ([]Tournament, error)
	ListActiveFrutales() ([]Tournament, error)
	SetTournamentEstado(tournamentID int64, estado string) error
	AddInscription(tournamentID, playerID int64, handicapCourse *float64) (int64, error)
	GetInscriptions(tournamentID int64) ([]Inscription, error)
	Clear()
}
