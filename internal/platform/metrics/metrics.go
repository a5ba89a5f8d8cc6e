package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics.
type Metrics struct {
	RequestsCreated    prometheus.Counter
	DomainsProvisioned prometheus.Counter
}

// New creates and registers the application-level metrics.
func New() *Metrics {
	return &Metrics{
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_requests_created_total",
			Help: "Total number of domain requests created",
		}),
		DomainsProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_domains_provisioned_total",
			Help: "Total number of domains provisioned through approval",
		}),
	}
}

// IncrementRequestsCreated increments the requests created counter by 1.
func (m *Metrics) IncrementRequestsCreated() {
	m.RequestsCreated.Inc()
}

// IncrementDomainsProvisioned increments the domains provisioned counter by 1.
func (m *Metrics) IncrementDomainsProvisioned() {
	m.DomainsProvisioned.Inc()
}
