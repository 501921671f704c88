package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/loom-go/core/actor"
	"github.com/codewandler/loom-go/core/metrics"
)

// runtimeMetrics implements actor.Metrics using Prometheus.
type runtimeMetrics struct {
	workers         *prometheus.GaugeVec
	actors          *prometheus.GaugeVec
	actorsCreated   *prometheus.CounterVec
	eventsDelivered *prometheus.CounterVec
	timeoutsFired   *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
}

// NewRuntimeMetrics creates a Prometheus implementation of actor.Metrics.
func NewRuntimeMetrics(reg prometheus.Registerer) actor.Metrics {
	m := &runtimeMetrics{
		workers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "loom_actor_workers",
			Help: "Number of running scheduler goroutines",
		}, []string{"scheduler"}),

		actors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "loom_actor_actors",
			Help: "Number of registered actors per scheduler",
		}, []string{"scheduler"}),

		actorsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loom_actor_actors_created_total",
			Help: "Total number of actors created",
		}, []string{"scheduler"}),

		eventsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loom_actor_events_delivered_total",
			Help: "Total number of events routed into mailboxes",
		}, []string{"scheduler"}),

		timeoutsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loom_actor_timeouts_fired_total",
			Help: "Total number of expired deadlines fired",
		}, []string{"scheduler"}),

		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loom_actor_pass_duration_seconds",
			Help:    "Scheduler loop pass time in seconds, excluding idle waits",
			Buckets: defaultBuckets,
		}, []string{"scheduler"}),
	}

	reg.MustRegister(
		m.workers,
		m.actors,
		m.actorsCreated,
		m.eventsDelivered,
		m.timeoutsFired,
		m.passDuration,
	)
	return m
}

func schedLabel(schedID int) string { return strconv.Itoa(schedID) }

func (m *runtimeMetrics) SchedulerStarted(schedID int) {
	m.workers.WithLabelValues(schedLabel(schedID)).Inc()
}

func (m *runtimeMetrics) SchedulerStopped(schedID int) {
	m.workers.WithLabelValues(schedLabel(schedID)).Dec()
}

func (m *runtimeMetrics) ActorCreated(schedID int) {
	l := schedLabel(schedID)
	m.actors.WithLabelValues(l).Inc()
	m.actorsCreated.WithLabelValues(l).Inc()
}

func (m *runtimeMetrics) ActorDestroyed(schedID int) {
	m.actors.WithLabelValues(schedLabel(schedID)).Dec()
}

func (m *runtimeMetrics) EventsDelivered(schedID int, n int) {
	m.eventsDelivered.WithLabelValues(schedLabel(schedID)).Add(float64(n))
}

func (m *runtimeMetrics) TimeoutsFired(schedID int, n int) {
	m.timeoutsFired.WithLabelValues(schedLabel(schedID)).Add(float64(n))
}

func (m *runtimeMetrics) PassDuration(schedID int) metrics.Timer {
	return newTimer(m.passDuration.WithLabelValues(schedLabel(schedID)))
}

var _ actor.Metrics = (*runtimeMetrics)(nil)
