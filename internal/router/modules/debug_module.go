package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcomanduci/diario-de-gratidao/internal/container"
	"github.com/mcomanduci/diario-de-gratidao/internal/interface/middleware"
	"github.com/mcomanduci/diario-de-gratidao/pkg/response"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	// Liveness plus dependency checks, for the load balancer and humans.
	rg.GET("/health", rl, func(c *gin.Context) {
		checks := gin.H{"postgres": "ok", "redis": "ok"}
		status := http.StatusOK

		if pool := container.GetPGPool(); pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				checks["postgres"] = "down"
				status = http.StatusServiceUnavailable
			}
		}
		if rdb := container.GetRedis(); rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				checks["redis"] = "down"
				status = http.StatusServiceUnavailable
			}
		}

		if status == http.StatusOK {
			response.Success(c, status, checks, "healthy", nil)
			return
		}
		response.Error[any](c, status, "degraded", checks)
	})

	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
