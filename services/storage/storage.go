package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homesweethome/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const listingFolder = "listings"

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader implements ImageUploader with Cloudinary.
type CloudinaryUploader struct {
	upload  uploadAPI
	timeout time.Duration
}

// NewCloudinaryUploader builds the uploader from the Cloudinary credentials.
func NewCloudinaryUploader(cfg *config.Config) (*CloudinaryUploader, error) {
	if cfg.CloudinaryName == "" || cfg.CloudinaryKey == "" || cfg.CloudinarySecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryUploader{upload: &cld.Upload, timeout: cfg.UploadTimeout}, nil
}

// UploadImage uploads a base64 data URI into the listings folder.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") || !strings.Contains(dataURI, ";base64,") {
		return "", ErrNotAnImage
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	result, err := u.upload.Upload(ctx, dataURI, uploader.UploadParams{Folder: listingFolder})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected image: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL")
	}
	return result.SecureURL, nil
}
