package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Merchant handler request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ufc_gateway_requests_total",
		Help: "Total number of UFC merchant handler commands",
	}, []string{
		"operation", // request, authorize, status, reverse, refund, batch, register, charge, credit
		"status",    // ok, failed, reversed, ... ; "unknown" when absent; "error" on transport failure
	})

	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ufc_gateway_request_duration_seconds",
		Help: "Round trip time of UFC merchant handler commands",
		// Buckets: 100ms to 30s (typical payment processing times)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
	})

	gatewayRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ufc_gateway_requests_in_flight",
		Help: "Number of UFC merchant handler commands awaiting a reply",
	})

	gatewayAmountMinor = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ufc_gateway_amount_minor_total",
		Help: "Total amount submitted to the gateway in minor units",
	}, []string{
		"operation",
		"currency", // ISO 4217 numeric
	})
)

// GatewayRequestStarted marks a command in flight and returns the matching done func
func GatewayRequestStarted() func() {
	gatewayRequestsInFlight.Inc()
	return gatewayRequestsInFlight.Dec
}

// RecordGatewayRequest records the outcome of one merchant handler command
func RecordGatewayRequest(operation, status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	gatewayRequestsTotal.WithLabelValues(operation, status).Inc()
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGatewayAmount adds a submitted amount; non-positive amounts are ignored
func RecordGatewayAmount(operation string, currency int, amountMinor int64) {
	if amountMinor <= 0 {
		return
	}
	gatewayAmountMinor.WithLabelValues(operation, strconv.Itoa(currency)).Add(float64(amountMinor))
}
