package router

import (
	appdiary "github.com/mcomanduci/diario-de-gratidao/internal/application"
	"github.com/mcomanduci/diario-de-gratidao/internal/container"
	pginfra "github.com/mcomanduci/diario-de-gratidao/internal/infrastructure/postgres"
	handlers "github.com/mcomanduci/diario-de-gratidao/internal/interface/http"
	"github.com/mcomanduci/diario-de-gratidao/internal/router/modules"
)

func buildUserModule() *modules.UserModule {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := appdiary.NewUserService(
		repo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetLogger(),
	)

	userHandler := handlers.NewUserHandler(
		service,
		container.GetJWT(),
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	authHandler := handlers.NewAuthHandler(
		service,
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.ResetPasswordURL,
		cfg.MailSendEnabled,
	)

	return modules.NewUserModule(userHandler, authHandler, container.GetJWT())
}

func buildDiaryModule() *modules.DiaryModule {
	cfg := container.GetConfig()

	repo := pginfra.NewDiaryRepository(container.GetPGPool())
	service := appdiary.NewDiaryService(
		repo,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESDiariesIndex,
		cfg.StatsCacheTTL,
	)

	diaryHandler := handlers.NewDiaryHandler(service, container.GetLogger())
	uploadHandler := handlers.NewUploadHandler(container.GetCloudinary(), container.GetLogger())

	return modules.NewDiaryModule(diaryHandler, uploadHandler, container.GetJWT())
}

// InitModules builds every feature module and adds it to the registry.
// Call once during startup, after the container singletons are set.
func InitModules(r *Registry) {
	r.Add(buildUserModule())
	r.Add(buildDiaryModule())
	r.Add(modules.NewDebugModule())
}
