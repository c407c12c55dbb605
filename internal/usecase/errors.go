package usecase

import (
	"errors"
	"fmt"

	"jobboard/internal/pkg/validation"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrInvalidPage      = errors.New("invalid page")
	ErrJobNotFound      = errors.New("job not found")
	ErrSavedJobNotFound = errors.New("saved job not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrAboutMeRequired  = errors.New("about_me required")

	ErrNoFile              = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ValidationError carries field messages. Index is set when the failure
// belongs to one item of a batch.
type ValidationError struct {
	Index  *int
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	if e.Index != nil {
		return fmt.Sprintf("item %d: %s", *e.Index, e.Fields.Error())
	}
	return e.Fields.Error()
}

func newValidationError(fe validation.FieldErrors) *ValidationError {
	return &ValidationError{Fields: fe}
}

func newItemValidationError(index int, fe validation.FieldErrors) *ValidationError {
	i := index
	return &ValidationError{Index: &i, Fields: fe}
}

// ItemNotFoundError reports a batch item whose id does not belong to the caller.
type ItemNotFoundError struct {
	Resource string
	ID       int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found.", e.Resource, e.ID)
}
