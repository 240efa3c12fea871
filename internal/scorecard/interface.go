package scorecard

// Store defines the interface for interacting with scorecard data.
type Store interface {
	GetOrCreate(tournamentID, playerID int64, handicapCourse *float64, holes []HolePlan) (*Scorecard, error)
	GetByID(scorecardID int64) (*Scorecard, error)
	ListByTournament(tournamentID int64) ([]Scorecard, error)
	UpdateHoleScores(scorecardID int64, updates []HoleScoreUpdate) error
	Deliver(scorecardID int64) error
	Disqualify(scorecardID int64) error
	UndoDisqualify(scorecardID int64) error
	CancelInProgress(tournamentID int64) (int64, error)
}
