package status

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshokin/version-file/internal/logger"
	"github.com/oshokin/version-file/internal/version"
)

const (
	// VersionPath serves the loaded version.
	VersionPath = "/version"
	// HealthPath serves the liveness probe.
	HealthPath = "/healthz"
)

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
}

// NewRouter builds the gin engine that exposes the provider over HTTP.
func NewRouter(provider version.Provider) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(VersionPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, VersionResponse{
			Version: provider.VersionString(),
		})
	})

	router.GET(HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// requestLogger logs each request through the context logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		kvs := []any{
			"http.method", c.Request.Method,
			"http.path", c.Request.URL.Path,
			"http.status_code", statusCode,
			"http.latency", time.Since(start),
			"http.client_ip", c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			kvs = append(kvs, "http.error", c.Errors.String())
		}

		ctx := c.Request.Context()

		switch {
		case statusCode >= http.StatusInternalServerError:
			logger.ErrorKV(ctx, "HTTP request failed", kvs...)
		case statusCode >= http.StatusBadRequest:
			logger.WarnKV(ctx, "HTTP request warning", kvs...)
		default:
			logger.DebugKV(ctx, "HTTP request", kvs...)
		}
	}
}
