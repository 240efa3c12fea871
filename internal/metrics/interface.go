package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncCalcRuns()
	IncScorecardsDelivered()
	ObserveCalcDuration(duration float64)
	IncPollTicks()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists coarse lifetime counters across restarts.
type MetricsStore interface {
	Increment(key string)
	Get(key string) (int64, error)
}
