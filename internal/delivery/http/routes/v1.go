package routes

import (
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Auth:           h.Auth,
		Jobs:           h.Jobs,
		SavedJobs:      h.SavedJobs,
		Profile:        h.Profile,
		AuthMiddleware: h.AuthMiddleware,
	})
}
