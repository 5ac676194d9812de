package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

var startedAt = time.Now()

// status is the payload served on /ping. Version and commit come from the
// VERSION and GIT_COMMIT environment variables stamped at deploy time.
type status struct {
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	Hostname  string    `json:"hostname"`
	Uptime    string    `json:"uptime"`
	Time      time.Time `json:"time"`
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RegisterHealthEndpoints registers the liveness and build info endpoints.
// /ping reports build details for humans; /health and /ready answer the
// orchestrator's probes.
func RegisterHealthEndpoints(e *echo.Echo, serviceName string) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	version := envOr("VERSION", "development")
	commit := envOr("GIT_COMMIT", "unknown")

	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, status{
			Service:   serviceName,
			Version:   version,
			GitCommit: commit,
			GoVersion: runtime.Version(),
			Hostname:  hostname,
			Uptime:    time.Since(startedAt).Round(time.Second).String(),
			Time:      time.Now(),
		})
	})

	probe := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/health", probe)
	e.GET("/ready", probe)
}
