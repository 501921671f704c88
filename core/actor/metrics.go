package actor

import "github.com/codewandler/loom-go/core/metrics"

// Metrics receives the runtime's instrumentation callbacks. All methods must
// be safe for concurrent use; they are called from scheduler goroutines on
// hot paths, so implementations should be cheap.
type Metrics interface {
	SchedulerStarted(schedID int)
	SchedulerStopped(schedID int)

	ActorCreated(schedID int)
	ActorDestroyed(schedID int)

	// EventsDelivered reports a drained inbound batch of size n.
	EventsDelivered(schedID int, n int)
	// TimeoutsFired reports n deadlines fired in one pass.
	TimeoutsFired(schedID int, n int)
	// PassDuration times one scheduler loop pass (excluding the idle wait).
	PassDuration(schedID int) metrics.Timer
}

type nopMetrics struct{}

func (nopMetrics) SchedulerStarted(int)           {}
func (nopMetrics) SchedulerStopped(int)           {}
func (nopMetrics) ActorCreated(int)               {}
func (nopMetrics) ActorDestroyed(int)             {}
func (nopMetrics) EventsDelivered(int, int)       {}
func (nopMetrics) TimeoutsFired(int, int)         {}
func (nopMetrics) PassDuration(int) metrics.Timer { return metrics.NopTimer() }

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
