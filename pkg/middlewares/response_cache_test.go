package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newCachedRouter(rc *ResponseCache, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(rc.CacheMiddleware())
	router.GET("/goals/:id", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "calls": *calls})
	})
	router.GET("/missing", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
	})
	router.PUT("/goals/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.DELETE("/goals/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
	})

	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestResponseCache_ServesSecondGetFromCache(t *testing.T) {
	RegisterTestingT(t)

	calls := 0
	router := newCachedRouter(NewResponseCache(time.Minute, zap.NewNop(), nil), &calls)

	first := serve(router, http.MethodGet, "/goals/1")
	Expect(first.Header().Get("X-Cache")).To(Equal("MISS"))

	second := serve(router, http.MethodGet, "/goals/1")
	Expect(second.Code).To(Equal(http.StatusOK))
	Expect(second.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(second.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
	Expect(second.Body.String()).To(Equal(first.Body.String()))
	Expect(calls).To(Equal(1))
}

func TestResponseCache_KeysOnConcretePath(t *testing.T) {
	RegisterTestingT(t)

	calls := 0
	router := newCachedRouter(NewResponseCache(time.Minute, zap.NewNop(), nil), &calls)

	serve(router, http.MethodGet, "/goals/1")
	other := serve(router, http.MethodGet, "/goals/2")

	Expect(other.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(other.Body.String()).To(ContainSubstring(`"id":"2"`))
	Expect(calls).To(Equal(2))
}

func TestResponseCache_SkipsErrorResponses(t *testing.T) {
	RegisterTestingT(t)

	calls := 0
	router := newCachedRouter(NewResponseCache(time.Minute, zap.NewNop(), nil), &calls)

	serve(router, http.MethodGet, "/missing")
	again := serve(router, http.MethodGet, "/missing")

	Expect(again.Code).To(Equal(http.StatusNotFound))
	Expect(again.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(calls).To(Equal(2))
}

func TestResponseCache_SuccessfulWriteFlushes(t *testing.T) {
	RegisterTestingT(t)

	calls := 0
	router := newCachedRouter(NewResponseCache(time.Minute, zap.NewNop(), nil), &calls)

	serve(router, http.MethodGet, "/goals/1")
	serve(router, http.MethodDelete, "/goals/9")
	Expect(serve(router, http.MethodGet, "/goals/1").Header().Get("X-Cache")).To(Equal("HIT"))

	serve(router, http.MethodPut, "/goals/1")
	Expect(serve(router, http.MethodGet, "/goals/1").Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(calls).To(Equal(2))
}

func TestResponseCache_RecordsHitsAndMisses(t *testing.T) {
	RegisterTestingT(t)

	registry := prometheus.NewRegistry()
	metrics := NewAppMetrics(registry)
	calls := 0
	router := newCachedRouter(NewResponseCache(time.Minute, zap.NewNop(), metrics), &calls)

	serve(router, http.MethodGet, "/goals/1")
	serve(router, http.MethodGet, "/goals/1")
	serve(router, http.MethodGet, "/goals/1")

	expected := `
# HELP response_cache_hits_total Total number of GET responses served from the cache
# TYPE response_cache_hits_total counter
response_cache_hits_total{path="/goals/:id"} 2
# HELP response_cache_misses_total Total number of GET responses not found in the cache
# TYPE response_cache_misses_total counter
response_cache_misses_total{path="/goals/:id"} 1
`
	err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "response_cache_hits_total", "response_cache_misses_total")
	Expect(err).NotTo(HaveOccurred())
}

func TestResponseCache_DoesNotStoreReadOverlappingWrite(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(time.Minute, zap.NewNop(), nil)
	calls := 0
	router := newCachedRouter(rc, &calls)

	// the read renders old state, then a write lands before the read finishes
	router.GET("/slow/:id", func(c *gin.Context) {
		calls++
		body := gin.H{"id": c.Param("id"), "name": "before"}
		serve(router, http.MethodPut, "/goals/"+c.Param("id"))
		c.JSON(http.StatusOK, body)
	})

	first := serve(router, http.MethodGet, "/slow/1")
	Expect(first.Code).To(Equal(http.StatusOK))
	Expect(first.Header().Get("X-Cache")).To(Equal("MISS"))

	second := serve(router, http.MethodGet, "/slow/1")
	Expect(second.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(calls).To(Equal(2))

	serve(router, http.MethodGet, "/goals/1")
	Expect(serve(router, http.MethodGet, "/goals/1").Header().Get("X-Cache")).To(Equal("HIT"))
}
