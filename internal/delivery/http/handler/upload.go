package handler

import (
	"errors"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

func noClose() {}

// formUpload opens the file sent as field. A missing file yields a nil
// upload; the returned func closes the file.
func formUpload(c fiber.Ctx, field string) (*usecase.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, noClose, nil
		}
		return nil, noClose, middleware.NewAppError(fiber.StatusBadRequest, MessageNoFile, nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noClose, middleware.NewAppError(fiber.StatusBadRequest, MessageNoFile, nil, err)
	}
	return &usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
