package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the back-office core.
type Metrics struct {
	Mutations    *prometheus.CounterVec
	AuditEntries prometheus.Counter
	Backups      *prometheus.CounterVec
	Restores     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "greenlight_mutations_total",
			Help: "Total entity mutations applied, by resource kind and action",
		}, []string{"resource", "action"}),
		AuditEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "greenlight_audit_entries_total",
			Help: "Total audit trail entries recorded",
		}),
		Backups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "greenlight_backups_total",
			Help: "Total backup snapshots, by terminal outcome",
		}, []string{"outcome"}),
		Restores: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "greenlight_restores_total",
			Help: "Total restore attempts, by terminal outcome",
		}, []string{"outcome"}),
	}
}

// ObserveMutation increments the mutation counter for a resource/action pair.
func (m *Metrics) ObserveMutation(resource, action string) {
	m.Mutations.WithLabelValues(resource, action).Inc()
}

// ObserveBackup increments the backup counter for a terminal outcome.
func (m *Metrics) ObserveBackup(outcome string) {
	m.Backups.WithLabelValues(outcome).Inc()
}

// ObserveRestore increments the restore counter for a terminal outcome.
func (m *Metrics) ObserveRestore(outcome string) {
	m.Restores.WithLabelValues(outcome).Inc()
}
