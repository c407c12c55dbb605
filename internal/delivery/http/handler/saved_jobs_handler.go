package handler

import (
	"strconv"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobsHandler struct {
	saved      usecase.SavedJobUsecase
	recent     usecase.RecentJobUsecase
	serializer dto.JobSerializer
}

type jobRefRequest struct {
	JobID *int64 `json:"job_id"`
}

func NewSavedJobsHandler(saved usecase.SavedJobUsecase, recent usecase.RecentJobUsecase, serializer dto.JobSerializer) *SavedJobsHandler {
	return &SavedJobsHandler{saved: saved, recent: recent, serializer: serializer}
}

func (h *SavedJobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/saved-jobs", h.ListSaved)
	r.Post("/saved-jobs", h.Save)
	r.Delete("/saved-jobs/:job_id", h.Remove)
	r.Get("/recent-jobs", h.ListRecent)
	r.Post("/recent-jobs", h.Record)
}

func (h *SavedJobsHandler) ListSaved(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.saved.List(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.Saved(c.Context(), items))
}

func (h *SavedJobsHandler) Save(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := bindJobRef(c)
	if err != nil {
		return err
	}

	created, err := h.saved.Save(c.Context(), uid, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if !created {
		return response.Success(c, fiber.StatusOK, "Job is already saved", nil)
	}
	return response.Created(c, "Job saved successfully", nil)
}

func (h *SavedJobsHandler) Remove(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := strconv.ParseInt(c.Params("job_id"), 10, 64)
	if err != nil {
		return mapUsecaseError(usecase.ErrSavedJobNotFound)
	}

	if err := h.saved.Remove(c.Context(), uid, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SavedJobsHandler) ListRecent(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.recent.List(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.Recent(c.Context(), items))
}

func (h *SavedJobsHandler) Record(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := bindJobRef(c)
	if err != nil {
		return err
	}

	if err := h.recent.Record(c.Context(), uid, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job added to recent jobs", nil)
}

func bindJobRef(c fiber.Ctx) (int64, error) {
	var req jobRefRequest
	if err := c.Bind().Body(&req); err != nil {
		return 0, badFormat(err)
	}
	if req.JobID == nil {
		return 0, fieldErrors(validation.FieldErrors{"job_id": {"This field is required."}})
	}
	return *req.JobID, nil
}
