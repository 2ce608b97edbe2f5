package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcomanduci/diario-de-gratidao/internal/container"
	handlers "github.com/mcomanduci/diario-de-gratidao/internal/interface/http"
	"github.com/mcomanduci/diario-de-gratidao/internal/interface/middleware"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
)

// DiaryModule wires the journal routes. Everything here requires auth.
type DiaryModule struct {
	Diaries *handlers.DiaryHandler
	Uploads *handlers.UploadHandler
	JWT     *helpers.JWTManager
}

func NewDiaryModule(d *handlers.DiaryHandler, u *handlers.UploadHandler, jwt *helpers.JWTManager) *DiaryModule {
	return &DiaryModule{Diaries: d, Uploads: u, JWT: jwt}
}

func (m *DiaryModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)

	// Uploads are heavier; keep a tighter per-user cap on top.
	uploadLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil)

	{
		auth.POST("/diarios", m.Diaries.Create)
		auth.GET("/diarios", m.Diaries.List)
		auth.GET("/diarios/export", m.Diaries.Export)
		auth.GET("/diarios/search", m.Diaries.Search)
		auth.GET("/diarios/:id", m.Diaries.Get)
		auth.PUT("/diarios/:id", m.Diaries.Update)
		auth.DELETE("/diarios/:id", m.Diaries.Delete)

		auth.GET("/stats/monthly", m.Diaries.MonthlyStats)

		auth.POST("/uploads/image", uploadLimiter, m.Uploads.Image)
	}
}
