package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcomanduci/diario-de-gratidao/internal/container"
	handlers "github.com/mcomanduci/diario-de-gratidao/internal/interface/http"
	"github.com/mcomanduci/diario-de-gratidao/internal/interface/middleware"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /api/register, /api/login, /api/refresh, /api/password/reset, /api/password/reset/confirm
// Protected: POST /api/logout, GET/PUT /api/profile/*, POST /api/profile/avatar
type UserModule struct {
	Users *handlers.UserHandler
	Auth  *handlers.AuthHandler
	JWT   *helpers.JWTManager
}

func NewUserModule(u *handlers.UserHandler, a *handlers.AuthHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Users: u, Auth: a, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Users.Register)
	rg.POST("/login", loginLimiter, m.Users.Login)
	rg.POST("/refresh", refreshLimiter, m.Users.Refresh)
	rg.POST("/password/reset", resetLimiter, m.Auth.ResetInit)
	rg.POST("/password/reset/confirm", resetLimiter, m.Auth.ResetConfirm)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/logout", m.Users.Logout)
		auth.GET("/profile", m.Users.GetProfile)
		auth.PUT("/profile/name", m.Users.UpdateName)
		auth.PUT("/profile/password", m.Users.ChangePassword)
		auth.POST("/profile/avatar", m.Users.UploadAvatar)
	}
}
