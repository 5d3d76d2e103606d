package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/logger"
)

// GinLogger logs each request through the shared loggers instead of gin's
// default writer, so request lines end up in the rotated files too.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		switch {
		case status >= 500:
			logger.ErrorLogger.Errorf("%s %s -> %d (%v)", c.Request.Method, path, status, latency)
		case status >= 400:
			logger.WarnLogger.Warnf("%s %s -> %d (%v)", c.Request.Method, path, status, latency)
		default:
			logger.InfoLogger.Infof("%s %s -> %d (%v)", c.Request.Method, path, status, latency)
		}
	}
}
