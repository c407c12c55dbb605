package handler

import (
	"errors"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	MessageValidationFailed  = "Validation failed."
	MessageInvalidFormat     = "Invalid request format. Expected JSON."
	MessageProfileNotFound   = "Profile not found."
	MessageJobNotFound       = "Job not found"
	MessageSavedJobNotFound  = "Saved job not found"
	MessageInvalidPage       = "Invalid page."
	MessageNoFile            = "No file uploaded"
	MessageInvalidCredential = "Invalid credentials."
)

// itemErrors is the body of a failed batch item.
type itemErrors struct {
	Index  int                    `json:"index"`
	Errors validation.FieldErrors `json:"errors"`
}

func fieldErrors(fe validation.FieldErrors) error {
	return middleware.NewAppError(fiber.StatusBadRequest, MessageValidationFailed, fe, nil)
}

// mapUsecaseError turns usecase errors into AppErrors. Anything unknown
// becomes a 500 whose cause is logged but never rendered.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		if ve.Index != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, MessageValidationFailed,
				itemErrors{Index: *ve.Index, Errors: ve.Fields}, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, MessageValidationFailed, ve.Fields, err)
	}

	var nf *usecase.ItemNotFoundError
	if errors.As(err, &nf) {
		return middleware.NewAppError(fiber.StatusNotFound, nf.Error(), nil, err)
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, MessageProfileNotFound, nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, MessageJobNotFound, nil, err)
	case errors.Is(err, usecase.ErrSavedJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, MessageSavedJobNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidPage):
		return middleware.NewAppError(fiber.StatusNotFound, MessageInvalidPage, nil, err)
	case errors.Is(err, usecase.ErrAboutMeRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "'about_me' field is required.", nil, err)
	case errors.Is(err, usecase.ErrNoFile):
		return middleware.NewAppError(fiber.StatusBadRequest, MessageNoFile, nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusBadRequest, "The submitted file is too large.", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Upload a valid image.", nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusBadRequest, MessageInvalidCredential, nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Token is expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Token is invalid", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}
	return id, nil
}

func badFormat(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, MessageInvalidFormat, nil, err)
}
