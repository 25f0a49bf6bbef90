// Package metrics exposes booking-page counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tour_booking"

const (
	ResultBooked   = "booked"
	ResultRejected = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	DraftsOpened *prometheus.CounterVec
	Submissions  *prometheus.CounterVec
	Abandoned    prometheus.Counter
	ActiveDrafts prometheus.GaugeFunc
	HTTPRequests *prometheus.CounterVec
}

// New registers every collector on a private registry. activeDrafts is
// polled on scrape and should count open dialogs only.
func New(activeDrafts func() int) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		DraftsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_opened_total",
			Help:      "Booking dialogs opened, by tour id.",
		}, []string{"tour"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submit attempts, by result.",
		}, []string{"result"}),
		Abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "abandoned_total",
			Help:      "Booking dialogs closed without submitting.",
		}),
		ActiveDrafts: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_drafts",
			Help:      "Sessions with the booking dialog open.",
		}, func() float64 { return float64(activeDrafts()) }),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method and status code.",
		}, []string{"method", "code"}),
	}

	reg.MustRegister(
		m.DraftsOpened,
		m.Submissions,
		m.Abandoned,
		m.ActiveDrafts,
		m.HTTPRequests,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) TourOpened(tourID int) {
	m.DraftsOpened.WithLabelValues(strconv.Itoa(tourID)).Inc()
}

func (m *Metrics) Submitted(result string) {
	m.Submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
