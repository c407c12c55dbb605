package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Jobs      *handler.JobsHandler
	SavedJobs *handler.SavedJobsHandler
	Profile   *handler.ProfileHandler
	// LiveFeed serves the websocket job feed; nil disables it.
	LiveFeed fiber.Handler

	AuthMiddleware *middleware.AuthMiddleware
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.h.Gatherer, promhttp.HandlerOpts{})))
	}
	if r.h.LiveFeed != nil {
		app.Get("/ws/jobs", r.h.LiveFeed)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	RegisterV1(app, r.h)
}
