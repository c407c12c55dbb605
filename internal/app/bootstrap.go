package app

import (
	"fmt"
	"log"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	fcfg := fiber.Config{AppName: cfg.App.AppName}
	if cfg.App.BodyLimit > 0 {
		fcfg.BodyLimit = cfg.App.BodyLimit
	}
	f := fiber.New(fcfg)

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(buildHandlers(c)).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(log.Writer(), "", log.LstdFlags|log.Lmicroseconds)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewTracingMiddleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware(c.Metrics).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func buildHandlers(c *Container) routes.Handlers {
	cfg := c.Config
	db := c.DB

	users := repository.NewPostgresUserRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	tx := repository.NewPostgresTransactor(db)

	authUC := usecase.NewAuthUsecase(users, tx, c.JWT)
	listUC := usecase.NewJobListUsecase(jobs, c.Cache, cfg.Pagination, cfg.Redis.ListingTTL, c.Metrics, c.Logger)
	createUC := usecase.NewJobCreateUsecase(jobs, c.FileStore(), c.Cache, c.Events, c.Hub, cfg.Storage.MaxUploadSize, c.Logger)
	savedUC := usecase.NewSavedJobUsecase(jobs, repository.NewPostgresSavedJobRepository(db))
	recentUC := usecase.NewRecentJobUsecase(jobs, repository.NewPostgresRecentJobRepository(db))
	profileUC := usecase.NewProfileUsecase(usecase.ProfileDeps{
		Profiles:   repository.NewPostgresProfileRepository(db),
		Work:       repository.NewPostgresWorkExperienceRepository(db),
		Education:  repository.NewPostgresEducationRepository(db),
		Transactor: tx,
		Files:      c.FileStore(),
		MaxUpload:  cfg.Storage.MaxUploadSize,
		Metrics:    c.Metrics,
		Logger:     c.Logger,
	})

	jobSerializer := dto.JobSerializer{Signer: c.URLSigner()}
	profileSerializer := dto.ProfileSerializer{Signer: c.URLSigner()}

	return routes.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres":   c.DB,
			"redis":      c.Cache,
			"migrations": migration.Checker{DB: c.DB.SQLDB()},
		}),
		Auth:           handler.NewAuthHandler(authUC),
		Jobs:           handler.NewJobsHandler(listUC, createUC, jobSerializer),
		SavedJobs:      handler.NewSavedJobsHandler(savedUC, recentUC, jobSerializer),
		Profile:        handler.NewProfileHandler(profileUC, profileSerializer),
		LiveFeed:       ws.NewHandler(c.Hub, c.Logger, cfg.App.WSAllowedOrigins).HandleJobsWS,
		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT),
		Gatherer:       c.Registry,
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
