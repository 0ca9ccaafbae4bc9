package handlers

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "telemetry"

// reading outcomes for readings_total
const (
	resultOvertemp = "overtemp"
	resultNormal   = "normal"
	resultRejected = "rejected"
)

type metrics struct {
	readings *prometheus.CounterVec
	cleared  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, bufferSize func() float64) *metrics {
	m := &metrics{
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "readings_total",
			Help:      "Telemetry submissions by outcome.",
		}, []string{"result"}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "error_buffer_cleared_total",
			Help:      "Entries removed from the error buffer by DELETE /errors.",
		}),
	}
	reg.MustRegister(
		m.readings,
		m.cleared,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "error_buffer_entries",
			Help:      "Entries currently held in the error buffer.",
		}, bufferSize),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) observeReading(overtemp bool) {
	if overtemp {
		m.readings.WithLabelValues(resultOvertemp).Inc()
		return
	}
	m.readings.WithLabelValues(resultNormal).Inc()
}

func (m *metrics) observeRejected() {
	m.readings.WithLabelValues(resultRejected).Inc()
}

// errorBufferSize feeds the error_buffer_entries gauge at scrape time.
func (h *Handler) errorBufferSize() float64 {
	if h.services == nil || h.services.ErrorLog == nil {
		return 0
	}
	n, err := h.services.Count(context.Background())
	if err != nil {
		h.log.Warnw("metrics_error_buffer_count_failed", "err", err)
		return 0
	}
	return float64(n)
}
