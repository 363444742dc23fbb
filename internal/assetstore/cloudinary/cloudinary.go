package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader sends images to Cloudinary using an unsigned upload preset.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	preset string
}

// NewUploader needs no API key or secret: unsigned presets authorize the
// upload on their own.
func NewUploader(cloudName, preset string) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Uploader{cld: cld, preset: preset}, nil
}

// WithBaseURL points the uploader at a different API origin.
func (u *Uploader) WithBaseURL(baseURL string) *Uploader {
	if baseURL != "" {
		u.cld.Config.API.UploadPrefix = baseURL
		u.cld.Upload.Config.API.UploadPrefix = baseURL
	}
	return u
}

func (u *Uploader) Upload(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	res, err := u.cld.Upload.UnsignedUpload(ctx, r, u.preset, uploader.UploadParams{
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to cloudinary: %w", mimeType, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary response has no secure_url")
	}
	return res.SecureURL, nil
}
