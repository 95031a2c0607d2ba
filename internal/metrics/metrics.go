// Package metrics collects renderer and watcher counters in a private
// Prometheus registry and writes them in the textfile exposition format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the helix metrics. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	Frames        prometheus.Counter
	FrameDuration prometheus.Histogram
	Intents       *prometheus.CounterVec
	Reloads       *prometheus.CounterVec
	Nodes         *prometheus.GaugeVec
	Rotation      prometheus.Gauge
}

// New creates a collector with its own registry.
func New(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	frames := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_total",
		Help:      "Total number of frames drawn",
	})
	frameDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_duration_seconds",
		Help:      "Time spent integrating and re-projecting one frame",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
	})
	intents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_total",
		Help:      "Select, delete and clear intents dispatched",
	}, []string{"kind"})
	reloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reloads_total",
		Help:      "Record file reloads",
	}, []string{"status"})
	nodes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "nodes",
		Help:      "Nodes in the current snapshot",
	}, []string{"kind"})
	rotation := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rotation_radians",
		Help:      "Current helix rotation",
	})

	registry.MustRegister(frames, frameDuration, intents, reloads, nodes, rotation)

	return &Collector{
		registry:      registry,
		Frames:        frames,
		FrameDuration: frameDuration,
		Intents:       intents,
		Reloads:       reloads,
		Nodes:         nodes,
		Rotation:      rotation,
	}
}

// ObserveFrame records one drawn frame.
func (c *Collector) ObserveFrame(d time.Duration, rotation float64) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDuration.Observe(d.Seconds())
	c.Rotation.Set(rotation)
}

// ObserveIntent counts a dispatched intent.
func (c *Collector) ObserveIntent(kind string) {
	if c == nil || kind == "" || kind == "none" {
		return
	}
	c.Intents.WithLabelValues(kind).Inc()
}

// ObserveReload counts a reload attempt.
func (c *Collector) ObserveReload(err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Reloads.WithLabelValues(status).Inc()
}

// SetNodes publishes snapshot sizes.
func (c *Collector) SetNodes(questions, objectives, ghosts int) {
	if c == nil {
		return
	}
	c.Nodes.WithLabelValues("question").Set(float64(questions))
	c.Nodes.WithLabelValues("objective").Set(float64(objectives))
	c.Nodes.WithLabelValues("ghost").Set(float64(ghosts))
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes every metric to path for a node exporter textfile
// collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
