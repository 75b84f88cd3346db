package middlewares

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResponseCache keeps successful GET responses in memory for a short TTL.
// Any successful write request flushes the whole cache, so a client never
// reads its own write stale.
type ResponseCache struct {
	cache   *cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
	metrics *AppMetrics

	// generation counts flushes. A GET rendered while a write completed is
	// not stored, since its body may predate that write.
	mu         sync.Mutex
	generation uint64
}

type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	StoredAt    time.Time
}

func NewResponseCache(ttl time.Duration, logger *zap.Logger, metrics *AppMetrics) *ResponseCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ResponseCache{
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()

			if isSuccess(c.Writer.Status()) {
				rc.flush(c.Request)
			}
			return
		}

		path := c.FullPath()
		if path == "" {
			c.Next()
			return
		}

		key := "cache:" + c.Request.URL.RequestURI()

		if item, found := rc.cache.Get(key); found {
			cached := item.(cachedResponse)

			_, span := CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
				attribute.String("cache.key", key),
				attribute.String("cache.path", path),
				attribute.String("cache.age", time.Since(cached.StoredAt).String()),
			})
			defer span.End()

			rc.metrics.RecordCacheHit(c.Request.Context(), path)

			c.Header("X-Cache", "HIT")
			c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.StoredAt).Seconds()))
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		ctx, span := CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", key),
			attribute.String("cache.path", path),
		})
		defer span.End()

		rc.metrics.RecordCacheMiss(c.Request.Context(), path)

		generation := rc.currentGeneration()

		writer := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		status := writer.Status()
		if !isSuccess(status) {
			return
		}

		_, storeSpan := CreateChildSpan(ctx, "cache.response.store", []attribute.KeyValue{
			attribute.String("cache.key", key),
			attribute.Int("cache.status_code", status),
			attribute.Int("cache.body_size", writer.body.Len()),
			attribute.String("cache.ttl", rc.ttl.String()),
		})
		defer storeSpan.End()

		stored := rc.store(key, generation, cachedResponse{
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        bytes.Clone(writer.body.Bytes()),
			StoredAt:    time.Now(),
		})

		storeSpan.SetAttributes(attribute.Bool("cache.stored", stored))
	}
}

func (rc *ResponseCache) currentGeneration() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return rc.generation
}

// store keeps the response only if no flush happened since generation was read.
func (rc *ResponseCache) store(key string, generation uint64, response cachedResponse) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.generation != generation {
		rc.logger.Debug("Response cache store skipped after flush", zap.String("key", key))
		return false
	}

	rc.cache.SetDefault(key, response)
	return true
}

func (rc *ResponseCache) flush(r *http.Request) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.generation++

	if rc.cache.ItemCount() == 0 {
		return
	}

	rc.cache.Flush()
	rc.logger.Debug("Response cache flushed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
