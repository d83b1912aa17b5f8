// Package metrics counts pipeline outcomes on a private prometheus registry.
// A one-shot CLI has no scrape endpoint, so counters are written to a
// node-exporter textfile at the end of a run.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rosetta_signer"

type Metrics struct {
	registry   *prometheus.Registry
	normalized *prometheus.CounterVec
	signatures *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

// New creates the counters and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		normalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_normalized_total",
			Help:      "Rosetta payloads normalized into envelopes, by input shape.",
		}, []string{"shape"}),
		signatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signatures_total",
			Help:      "Vkey witnesses added to transactions, by key role.",
		}, []string{"role"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Pipeline failures, by error kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(m.normalized, m.signatures, m.failures)

	return m
}

func (m *Metrics) PayloadNormalized(shape string) {
	m.normalized.WithLabelValues(shape).Inc()
}

func (m *Metrics) SignatureAdded(role string) {
	m.signatures.WithLabelValues(role).Inc()
}

func (m *Metrics) Failure(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry, e.g. for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all counters in the text exposition format to path
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
