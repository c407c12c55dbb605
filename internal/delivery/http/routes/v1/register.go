package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth      *handler.AuthHandler
	Jobs      *handler.JobsHandler
	SavedJobs *handler.SavedJobsHandler
	Profile   *handler.ProfileHandler

	AuthMiddleware *middleware.AuthMiddleware
}

// Register mounts the public routes on r and everything else behind the
// bearer token check.
func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	if d.Auth != nil {
		d.Auth.RegisterRoutes(r)
	}
	if d.Jobs != nil {
		d.Jobs.RegisterRoutes(r)
	}

	if d.AuthMiddleware == nil {
		return
	}
	protected := r.Group("", d.AuthMiddleware.Middleware())
	if d.SavedJobs != nil {
		d.SavedJobs.RegisterRoutes(protected)
	}
	if d.Profile != nil {
		d.Profile.RegisterRoutes(protected)
	}
}
