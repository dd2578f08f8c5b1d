package observability

import (
	"github.com/aretw0/perch/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the perch Prometheus collectors.
type Metrics struct {
	InstancesCreated prometheus.Counter
	Mutations        *prometheus.CounterVec
	MutationFailures *prometheus.CounterVec
	Schedules        *prometheus.CounterVec
	Discards         *prometheus.CounterVec
	Flushes          *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InstancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "perch_instances_created_total",
			Help: "Total number of host instances created",
		}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perch_mutations_total",
			Help: "Total number of committed tree mutations",
		}, []string{"op"}),
		MutationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perch_mutation_failures_total",
			Help: "Total number of mutations rejected by preconditions",
		}, []string{"op"}),
		Schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perch_callbacks_scheduled_total",
			Help: "Total number of callbacks scheduled per class",
		}, []string{"class"}),
		Discards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perch_callbacks_discarded_total",
			Help: "Total number of pending callbacks discarded by overwrite",
		}, []string{"class"}),
		Flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perch_flushes_total",
			Help: "Total number of callback flushes per class",
		}, []string{"class"}),
	}
	reg.MustRegister(
		m.InstancesCreated,
		m.Mutations,
		m.MutationFailures,
		m.Schedules,
		m.Discards,
		m.Flushes,
	)
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCreateInstance: func(e *domain.InstanceEvent) {
			m.InstancesCreated.Inc()
		},
		OnMutation: func(e *domain.MutationEvent) {
			if e.Failed {
				m.MutationFailures.WithLabelValues(string(e.Type)).Inc()
				return
			}
			m.Mutations.WithLabelValues(string(e.Type)).Inc()
		},
		OnSchedule: func(e *domain.SchedulerEvent) {
			m.Schedules.WithLabelValues(e.Class).Inc()
			if e.Discarded {
				m.Discards.WithLabelValues(e.Class).Inc()
			}
		},
		OnFlush: func(e *domain.SchedulerEvent) {
			m.Flushes.WithLabelValues(e.Class).Inc()
		},
	}
}
