package storage

import (
	"context"
	"io"
)

// PhotoStorage defines the operations for uploaded bootcamp photos.
type PhotoStorage interface {
	// UploadPhoto stores the image under the given public id and returns
	// the stored name.
	UploadPhoto(ctx context.Context, file io.Reader, publicID string) (string, error)
	// DeletePhoto removes a stored image. Missing images are not an error.
	DeletePhoto(ctx context.Context, publicID string) error
}
