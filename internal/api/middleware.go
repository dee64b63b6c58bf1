package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader is the response header carrying the per-request trace id.
const traceIDHeader = "X-Trace-Id"

// traceIDKey is the gin context key for the trace id.
const traceIDKey = "trace_id"

// requestTracing assigns every request a UUID trace id and logs method,
// path, status, and latency on completion.
func requestTracing(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		c.Set(traceIDKey, traceID)
		c.Header(traceIDHeader, traceID)

		start := time.Now()
		c.Next()

		logger.Info().
			Str("trace_id", traceID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}

// traceID returns the trace id assigned by requestTracing, or an empty string.
func traceID(c *gin.Context) string {
	id, _ := c.Get(traceIDKey)
	s, _ := id.(string)
	return s
}
