package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

func TestObserveRun(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveRun(adapter.RecurringRunStats{Due: 4, Created: 2, AlreadyMaterialized: 1, Failed: 1, Duration: time.Second})
	c.ObserveRun(adapter.RecurringRunStats{Due: 1, Created: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.recurringRuns))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.occurrences.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.occurrences.WithLabelValues("failed")))
	assert.Positive(t, testutil.ToFloat64(c.lastRun))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New(registry)
	require.NoError(t, err)

	_, err = New(registry)
	assert.Error(t, err)
}

func TestMiddleware_ReplacesParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/recurring/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recurring/abc-123", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestCount.WithLabelValues("204", http.MethodGet, "/recurring/:id")))
}
