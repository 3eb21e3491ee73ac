package health_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craftel-io/backend-craftel/internal/health"
)

// Draining flips the readiness gate so load balancers stop routing to the
// instance even while the dependency checks still pass.
func TestReadinessGateDuringDrain(t *testing.T) {
	handler := health.Handler{Checker: stubChecker{}}
	t.Cleanup(func() { health.SetReady(true) })

	health.SetReady(true)
	require.Equal(t, http.StatusOK, probeReady(handler).Code)

	health.SetReady(false)
	require.Equal(t, http.StatusServiceUnavailable, probeReady(handler).Code)
}
