package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "requestId"
)

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	reqID := c.GetHeader(headerRequestID)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(ctxKeyRequestID, reqID)
	c.Header(headerRequestID, reqID)

	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", reqID,
	)
}

func requestID(c *gin.Context) string {
	return c.GetString(ctxKeyRequestID)
}
