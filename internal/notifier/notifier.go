package notifier

import (
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finalized tournaments
	SendResultsNotification(t *tournament.Tournament, scores []frutales.Score, dryRun bool) error
	// For intermediate standings
	SendStandings(t *tournament.Tournament, scores []frutales.Score, dryRun bool) error

	// For formatting responses without sending
	FormatResultsResponse(t *tournament.Tournament, scores []frutales.Score) (any, error)
}
