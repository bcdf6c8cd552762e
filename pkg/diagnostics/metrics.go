package diagnostics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Metrics holds the Prometheus collectors exposed on /metrics. Every
// server carries its own registry so tests stay isolated from the
// default registerer and from each other.
type Metrics struct {
	registry *prometheus.Registry

	propertyEvents     *prometheus.CounterVec
	watchClients       prometheus.Gauge
	watchedProperties  prometheus.Gauge
	sceneComponents    prometheus.Gauge
	flushDuration      prometheus.Histogram
	flushInvalidations prometheus.Histogram
}

func newMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,

		propertyEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabletop",
			Subsystem: "watch",
			Name:      "property_events_total",
			Help:      "Property change events observed by the watch listeners.",
		}, []string{"kind", "property"}),

		watchClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tabletop",
			Subsystem: "watch",
			Name:      "clients",
			Help:      "Connected /watch websocket clients.",
		}),

		watchedProperties: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tabletop",
			Subsystem: "watch",
			Name:      "subscribed_properties",
			Help:      "Properties the server currently listens on.",
		}),

		sceneComponents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tabletop",
			Subsystem: "scene",
			Name:      "components",
			Help:      "Components in the scene, containers included.",
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tabletop",
			Subsystem: "render",
			Name:      "flush_duration_seconds",
			Help:      "Duration of render pipeline flushes.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
		}),

		flushInvalidations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tabletop",
			Subsystem: "render",
			Name:      "flush_invalidations",
			Help:      "Invalidations drained per flush.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
		}),
	}

	// Dispatch totals come from the observable package's own counters,
	// surfaced as one counter per channel.
	channels := map[string]func(observable.Stats) uint64{
		"user":     func(s observable.Stats) uint64 { return s.UserInvocations },
		"internal": func(s observable.Stats) uint64 { return s.InternalInvocations },
		"gui":      func(s observable.Stats) uint64 { return s.GUIInvocations },
	}
	for channel, read := range channels {
		factory.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "tabletop",
			Subsystem:   "observable",
			Name:        "listener_invocations_total",
			Help:        "Listener invocations delivered, by channel.",
			ConstLabels: prometheus.Labels{"channel": channel},
		}, func() float64 { return float64(read(observable.ReadStats())) })
	}

	return m
}

// ObserveFlush records one render pipeline flush. The loop driving the
// pipeline calls this with the flush duration and the number of
// invalidations the flush produced.
func (m *Metrics) ObserveFlush(d time.Duration, invalidations int) {
	m.flushDuration.Observe(d.Seconds())
	m.flushInvalidations.Observe(float64(invalidations))
}
