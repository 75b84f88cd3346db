package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "goalsapp/pkg/config"
	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(handlers...)
	router.GET("/goals/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	return router
}

func TestCORSMiddleware_AllowsAnyOriginByDefault(t *testing.T) {
	RegisterTestingT(t)

	router := newRouter(CORSMiddleware(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/goals/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
}

func TestCORSMiddleware_RestrictsToConfiguredOrigins(t *testing.T) {
	RegisterTestingT(t)

	router := newRouter(CORSMiddleware([]string{"http://app.example.com"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/goals/1", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusForbidden))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/goals/1", nil)
	req.Header.Set("Origin", "http://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusNoContent))
	Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://app.example.com"))
}

func TestMetricsAndLoggingMiddleware(t *testing.T) {
	RegisterTestingT(t)

	registry := prometheus.NewRegistry()
	metrics := NewAppMetrics(registry)

	router := newRouter(LoggingMiddleware(NewNopLogger()), MetricsMiddleware(metrics))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/7", nil))

	Expect(w.Code).To(Equal(http.StatusOK))

	families, err := registry.Gather()
	Expect(err).To(BeNil())

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}

	Expect(names).To(ContainElement("http_requests_total"))
}
