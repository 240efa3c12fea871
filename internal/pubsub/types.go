package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventRecalculateScores   EventType = "recalculate-scores"
	EventNotifyResults       EventType = "notify-results"
	EventTournamentFinalized EventType = "tournament-finalized"
)
