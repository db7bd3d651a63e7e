package storage

import (
	"context"
	"io"
	"time"
)

// PhotoStore stores profile photos as private objects served through short-lived URLs
type PhotoStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
