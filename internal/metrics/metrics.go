// Package metrics exposes reduction and layout counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"lafont/pkg/inet"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	rewrites     *prometheus.CounterVec
	frames       prometheus.Counter
	agents       prometheus.Gauge
	wires        prometheus.Gauge
	normal       prometheus.Gauge
	displacement prometheus.Gauge
	frameSeconds prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lafont_rewrites_total",
			Help: "Rewrite rules fired, by rule and pair of agent kinds.",
		}, []string{"rule", "pair"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lafont_frames_total",
			Help: "Frames produced by the scheduler.",
		}),
		agents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lafont_agents",
			Help: "Live agents in the net.",
		}),
		wires: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lafont_wires",
			Help: "Wires in the net.",
		}),
		normal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lafont_normal_form",
			Help: "1 once the net has no active pair left.",
		}),
		displacement: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lafont_layout_max_displacement",
			Help: "Largest body displacement during the last layout substep.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lafont_frame_duration_seconds",
			Help:    "Time spent reducing and relaxing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
	m.registry.MustRegister(m.rewrites, m.frames, m.agents, m.wires, m.normal, m.displacement, m.frameSeconds)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRewrite counts one rule firing.
func (m *Metrics) ObserveRewrite(rw inet.Rewrite) {
	if m == nil {
		return
	}
	a, b := rw.KindA.Symbol(), rw.KindB.Symbol()
	if b < a {
		a, b = b, a
	}
	m.rewrites.WithLabelValues(rw.Rule.String(), a+b).Inc()
}

// Frame is what the scheduler reports after each tick.
type Frame struct {
	Duration        time.Duration
	Agents          int
	Wires           int
	MaxDisplacement float64
	Normal          bool
}

// ObserveFrame records one scheduler tick.
func (m *Metrics) ObserveFrame(f Frame) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(f.Duration.Seconds())
	m.agents.Set(float64(f.Agents))
	m.wires.Set(float64(f.Wires))
	m.displacement.Set(f.MaxDisplacement)
	if f.Normal {
		m.normal.Set(1)
	} else {
		m.normal.Set(0)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
