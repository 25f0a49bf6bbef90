package middleware

import (
	"net/http"

	"tour-booking/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts requests by method and status code.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerCounter(m.HTTPRequests, next)
	}
}
