package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"
	log "github.com/sirupsen/logrus"
)

var (
	// MaxNumOfFailingRequests is the number of requests after which the
	// failure ratio is taken into account.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the ratio of failed requests that opens the breaker.
	FailingRatio = 0.6
	// OpenTimeout is how long an open breaker rejects requests before letting
	// a trial request through.
	OpenTimeout = 30 * time.Second
)

// NewCircuitBreaker returns a breaker that opens once more than
// MaxNumOfFailingRequests requests were made and at least FailingRatio of
// them failed. State changes are logged.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests &&
				ratio >= FailingRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Infof("circuit breaker %s changed from %s to %s", name, from, to)
		},
	})
}
