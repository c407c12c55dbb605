package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc         usecase.ProfileUsecase
	serializer dto.ProfileSerializer
	signer     dto.URLSigner
}

type aboutRequest struct {
	AboutMe *string `json:"about_me"`
}

func NewProfileHandler(uc usecase.ProfileUsecase, serializer dto.ProfileSerializer) *ProfileHandler {
	return &ProfileHandler{uc: uc, serializer: serializer, signer: serializer.Signer}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Get)
	r.Put("/profile/about", h.UpdateAbout)
	r.Post("/profile/skills", h.UpdateSkills)

	r.Patch("/profile/work_experience", h.ReconcileWorkExperiences)
	r.Get("/profile/work_experience/list", h.ListWorkExperiences)
	r.Patch("/profile/education", h.ReconcileEducations)
	r.Get("/profile/education/list", h.ListEducations)

	r.Post("/upload_resume", h.UploadResume)
	r.Post("/upload_avatar", h.UploadAvatar)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Get(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.Profile(c.Context(), v))
}

func (h *ProfileHandler) UpdateAbout(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req aboutRequest
	if err := c.Bind().Body(&req); err != nil {
		return badFormat(err)
	}

	v, err := h.uc.UpdateAbout(c.Context(), uid, req.AboutMe)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "About me updated successfully.", h.serializer.Profile(c.Context(), v))
}

func (h *ProfileHandler) UpdateSkills(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req usecase.SkillsInput
	if err := c.Bind().Body(&req); err != nil {
		return badFormat(err)
	}

	if err := h.uc.UpdateSkills(c.Context(), uid, req); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills saved successfully.", nil)
}

func (h *ProfileHandler) ReconcileWorkExperiences(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req usecase.WorkExperienceBatch
	if err := c.Bind().Body(&req); err != nil {
		return badFormat(err)
	}

	res, err := h.uc.ReconcileWorkExperiences(c.Context(), uid, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.WorkExperienceBatch(res))
}

func (h *ProfileHandler) ListWorkExperiences(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListWorkExperiences(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.WorkExperiences(items))
}

func (h *ProfileHandler) ReconcileEducations(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req usecase.EducationBatch
	if err := c.Bind().Body(&req); err != nil {
		return badFormat(err)
	}

	res, err := h.uc.ReconcileEducations(c.Context(), uid, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.EducationBatch(res))
}

func (h *ProfileHandler) ListEducations(c fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListEducations(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.Educations(items))
}

func (h *ProfileHandler) UploadResume(c fiber.Ctx) error {
	return h.upload(c, "resume", "Resume uploaded successfully", h.uc.UploadResume)
}

func (h *ProfileHandler) UploadAvatar(c fiber.Ctx) error {
	return h.upload(c, "avatar", "Avatar uploaded successfully", h.uc.UploadAvatar)
}

type uploadFunc func(ctx context.Context, userID uuid.UUID, f *usecase.Upload) (string, error)

func (h *ProfileHandler) upload(c fiber.Ctx, field, message string, fn uploadFunc) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	f, closeFile, err := formUpload(c, field)
	if err != nil {
		return err
	}
	defer closeFile()
	if f == nil {
		return mapUsecaseError(usecase.ErrNoFile)
	}

	key, err := fn(c.Context(), uid, f)
	if err != nil {
		return mapUsecaseError(err)
	}

	data := fiber.Map{field: nil}
	if u := h.objectURL(c, key); u != nil {
		data[field] = *u
	}
	return response.Success(c, fiber.StatusOK, message, data)
}

func (h *ProfileHandler) objectURL(c fiber.Ctx, key string) *string {
	if h.signer == nil {
		return nil
	}
	u, err := h.signer.URL(c.Context(), key)
	if err != nil {
		return nil
	}
	return &u
}
