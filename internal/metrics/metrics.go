package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewClaimConflictsTotal returns a Prometheus counter for the number of claim attempts lost to another claimant
func NewClaimConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "claim_conflicts_total",
		Help: "Total number of claim attempts rejected because the donation or need was no longer pending",
	})
}

// NewNotificationRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the notification sink
func NewNotificationRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_retries_total",
		Help: "Total number of retry attempts performed by the notification sink",
	})
}

// NewMatchSuggestionsTotal returns a Prometheus counter for the number of match suggestions emitted
func NewMatchSuggestionsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_suggestions_total",
		Help: "Total number of match suggestions emitted to users",
	})
}
