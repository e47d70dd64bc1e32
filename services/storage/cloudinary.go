package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"campfinder/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements PhotoStorage on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage initializes a Cloudinary-backed photo store from the
// app configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: cfg.CloudinaryFolder}, nil
}

// UploadPhoto streams the image to Cloudinary under the given public id,
// replacing any previous upload with the same id.
func (s *CloudinaryStorage) UploadPhoto(ctx context.Context, file io.Reader, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	overwrite := true
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Folder:    s.folder,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return resp.PublicID, nil
}

// DeletePhoto removes a stored image by public id.
func (s *CloudinaryStorage) DeletePhoto(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: s.folder + "/" + publicID})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", publicID, err)
	}
	return nil
}
