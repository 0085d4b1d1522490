package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"userapp/internal/core/telemetry"
	. "userapp/pkg/config"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	RegisterTestingT(t)

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware(metrics))
	router.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))
	}

	expected := `
# HELP userapp_http_requests_total Users API requests answered, by route template and status code.
# TYPE userapp_http_requests_total counter
userapp_http_requests_total{method="GET",route="/users",status="200"} 3
`
	Expect(testutil.GatherAndCompare(registry, strings.NewReader(expected), "userapp_http_requests_total")).To(Succeed())
}

func TestSetupGinMiddlewareWithConfig(t *testing.T) {
	RegisterTestingT(t)

	config := GetDefaultConfig()
	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupGinMiddlewareWithConfig(router, metrics, NewNopLogger(), config)
	router.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("100"))
}
