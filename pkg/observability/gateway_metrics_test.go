package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGatewayRequest(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("status", "ok"))
	RecordGatewayRequest("status", "ok", 150*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("status", "ok")))

	beforeUnknown := testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("batch", "unknown"))
	RecordGatewayRequest("batch", "", time.Second)
	assert.Equal(t, beforeUnknown+1, testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("batch", "unknown")))
}

func TestRecordGatewayAmount(t *testing.T) {
	before := testutil.ToFloat64(gatewayAmountMinor.WithLabelValues("charge", "981"))

	RecordGatewayAmount("charge", 981, 1250)
	RecordGatewayAmount("charge", 981, 0)
	RecordGatewayAmount("charge", 981, -5)

	assert.Equal(t, before+1250, testutil.ToFloat64(gatewayAmountMinor.WithLabelValues("charge", "981")))
}

func TestGatewayRequestStarted(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequestsInFlight)

	done := GatewayRequestStarted()
	assert.Equal(t, before+1, testutil.ToFloat64(gatewayRequestsInFlight))

	done()
	assert.Equal(t, before, testutil.ToFloat64(gatewayRequestsInFlight))
}
