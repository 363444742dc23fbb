// Package assetstore hosts uploaded catalog images outside the database.
package assetstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Opener implementations for unknown keys.
var ErrNotFound = errors.New("asset not found")

// Uploader stores an image and returns the public URL it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, mimeType string, r io.Reader) (url string, err error)
}

// Opener is implemented by backends whose assets are served by this process.
type Opener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
