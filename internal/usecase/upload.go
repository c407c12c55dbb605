package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FileStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
}

func (f Upload) isImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// objectKey builds "<prefix>/<uuid><ext>" keeping the original extension.
func objectKey(prefix string, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	return strings.TrimSuffix(prefix, "/") + "/" + uuid.NewString() + ext
}

func checkUpload(f *Upload, maxSize int64) error {
	if f == nil || f.Body == nil {
		return ErrNoFile
	}
	if maxSize > 0 && f.Size > maxSize {
		return ErrFileTooLarge
	}
	if f.ContentType == "" {
		f.ContentType = "application/octet-stream"
	}
	return nil
}
