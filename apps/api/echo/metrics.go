package echoapi

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/report"
)

// Metrics are the console's Prometheus counters.
type Metrics struct {
	logins         *prometheus.CounterVec
	guardDecisions *prometheus.CounterVec
	leads          prometheus.Counter
	exports        *prometheus.CounterVec
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "umeed_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "umeed_guard_decisions_total",
			Help: "Route guard decisions by console path and outcome.",
		}, []string{"path", "outcome"}),
		leads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "umeed_leads_received_total",
			Help: "Volunteer sign-ups received.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "umeed_csv_exports_total",
			Help: "CSV exports by report.",
		}, []string{"report"}),
	}

	reg.MustRegister(
		m.logins,
		m.guardDecisions,
		m.leads,
		m.exports,
	)

	return m
}

// RecordLogin counts a login attempt; outcome is "success", "invalid" or "error".
func (m *Metrics) RecordLogin(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordGuardDecision(path string, dec guard.Decision) {
	outcome := dec.Outcome.String()
	if dec.Outcome == guard.Redirect {
		outcome += ":" + dec.Location
	}
	m.guardDecisions.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) RecordLead() {
	m.leads.Inc()
}

func (m *Metrics) RecordExport(kind report.Kind) {
	m.exports.WithLabelValues(string(kind)).Inc()
}
