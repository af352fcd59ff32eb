package storage

import (
	"context"
	"errors"
)

// ErrNotAnImage is returned for uploads that are not image data URIs.
var ErrNotAnImage = errors.New("image must be a base64 encoded image data URI")

// ImageUploader stores listing images and returns their public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, dataURI string) (string, error)
}
