package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_client_api_requests_total",
			Help: "Total API requests issued by the gateway client.",
		},
		[]string{"method", "status"},
	)

	tokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_client_token_refresh_total",
			Help: "Token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)

	refreshWaiters = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "booking_client_refresh_waiters",
		Help: "Callers currently joined to the in-flight token refresh.",
	})
)

// Register adds the client metrics to the given registry. Call once per
// process; pass prometheus.DefaultRegisterer for the usual setup.
func Register(r prometheus.Registerer) {
	r.MustRegister(apiRequestsTotal, tokenRefreshTotal, refreshWaiters)
}

func ObserveRequest(method string, statusCode int) {
	apiRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

func ObserveRefresh(outcome string) {
	tokenRefreshTotal.WithLabelValues(outcome).Inc()
}

func RefreshWaiterAdd(delta float64) {
	refreshWaiters.Add(delta)
}
