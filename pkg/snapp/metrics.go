package snapp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "snapp"

// metrics holds the Prometheus collectors of one runtime. A nil *metrics
// records nothing.
type metrics struct {
	cellsCreated    prometheus.Counter
	cellUpdates     prometheus.Counter
	recomputes      prometheus.Counter
	subscriptions   prometheus.Gauge
	handlers        prometheus.Gauge
	nativeListeners *prometheus.GaugeVec
	sweeps          prometheus.Counter
	sweptNodes      prometheus.Counter
	renders         *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		cellsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cells_created_total",
			Help:      "Total number of cells created",
		}),
		cellUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cell_updates_total",
			Help:      "Total number of cell updates that changed the value",
		}),
		recomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recomputes_total",
			Help:      "Total number of subscription recomputes",
		}),
		subscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "subscriptions",
			Help:      "Number of live subscription entries",
		}),
		handlers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "event_handlers",
			Help:      "Number of registered delegated event handlers",
		}),
		nativeListeners: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "native_listeners",
			Help:      "Root listeners attached to the document by event type",
		}, []string{"event"}),
		sweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sweeps_total",
			Help:      "Total number of sweeps run",
		}),
		sweptNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "swept_nodes_total",
			Help:      "Total number of detached nodes evicted by sweeps",
		}),
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Total number of Render calls by result",
		}, []string{"result"}),
	}
}

func (m *metrics) cellCreated() {
	if m != nil {
		m.cellsCreated.Inc()
	}
}

func (m *metrics) cellUpdated() {
	if m != nil {
		m.cellUpdates.Inc()
	}
}

func (m *metrics) recomputed() {
	if m != nil {
		m.recomputes.Inc()
	}
}

func (m *metrics) setLive(subscriptions, handlers int) {
	if m != nil {
		m.subscriptions.Set(float64(subscriptions))
		m.handlers.Set(float64(handlers))
	}
}

func (m *metrics) listenerAttached(eventType string) {
	if m != nil {
		m.nativeListeners.WithLabelValues(eventType).Set(1)
	}
}

func (m *metrics) listenerDetached(eventType string) {
	if m != nil {
		m.nativeListeners.WithLabelValues(eventType).Set(0)
	}
}

func (m *metrics) swept(n int) {
	if m != nil {
		m.sweeps.Inc()
		m.sweptNodes.Add(float64(n))
	}
}

func (m *metrics) rendered(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.renders.WithLabelValues(result).Inc()
}
