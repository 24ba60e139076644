package middleware

import (
	"time"

	"Community_Portal/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestIDKey = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// RequestID 沿用调用方传入的请求 ID，否则生成一个
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Infof("%d %s %s %s %v [%s]",
			c.Writer.Status(), c.Request.Method, path, c.ClientIP(), time.Since(start), c.GetString(ContextRequestIDKey))
	}
}
