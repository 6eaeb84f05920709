// Package metrics exposes Prometheus metrics for backlight state and
// write activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors on a private registry so tests can run
// side by side without global registration conflicts.
type Metrics struct {
	registry *prometheus.Registry

	value   *prometheus.GaugeVec
	percent *prometheus.GaugeVec
	max     *prometheus.GaugeVec
	writes  *prometheus.CounterVec
	reloads *prometheus.CounterVec
}

// New creates the metric set on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "backlight_brightness",
			Help: "Current raw brightness value.",
		}, []string{"graphics_card"}),
		percent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "backlight_brightness_percent",
			Help: "Current brightness as a percentage of the maximum.",
		}, []string{"graphics_card"}),
		max: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "backlight_max_brightness",
			Help: "Maximum raw brightness reported by the device.",
		}, []string{"graphics_card"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backlight_writes_total",
			Help: "Brightness writes attempted, by outcome.",
		}, []string{"graphics_card", "outcome"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backlight_schedule_reloads_total",
			Help: "Schedule file reloads.",
		}, []string{"path"}),
	}

	m.registry.MustRegister(
		m.value, m.percent, m.max, m.writes, m.reloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBrightness records the current state of a graphics card.
func (m *Metrics) ObserveBrightness(card string, value, percent, max int) {
	m.value.WithLabelValues(card).Set(float64(value))
	m.percent.WithLabelValues(card).Set(float64(percent))
	m.max.WithLabelValues(card).Set(float64(max))
}

// CountWrite records a brightness write attempt.
func (m *Metrics) CountWrite(card string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.writes.WithLabelValues(card, outcome).Inc()
}

// CountScheduleReload records a schedule file reload.
func (m *Metrics) CountScheduleReload(path string) {
	m.reloads.WithLabelValues(path).Inc()
}
