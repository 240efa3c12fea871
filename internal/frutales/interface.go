package frutales

// Store defines the interface for persisting calculated scores.
type Store interface {
	// ReplaceScores atomically replaces all calculated scores of a
	// tournament with a fresh calculation run.
	ReplaceScores(tournamentID int64, scores []Score) error
	// GetScores returns the stored scores in display order: positioned rows
	// by position, then unpositioned non-disqualified rows by total points
	// descending, then disqualified rows.
	GetScores(tournamentID int64) ([]Score, error)
}
