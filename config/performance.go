package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func PerformanceLogger(logger *zap.Logger, threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
		}
		if salonID, ok := c.Get("salonId"); ok {
			fields = append(fields, zap.Any("salon_id", salonID))
		}

		logger.Info("request", fields...)

		// Alert for slow requests
		if threshold > 0 && latency > threshold {
			logger.Warn("slow request", fields...)
		}
	}
}
