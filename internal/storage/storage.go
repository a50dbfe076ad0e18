package storage

import (
	"context"
	"time"
)

// Префиксы объектов внутри бакета.
const (
	PrefixAvatars      = "avatars"
	PrefixPortfolio    = "portfolio"
	PrefixInspirations = "inspirations"
	PrefixMessages     = "messages"
)

type FileStorage interface {
	UploadFile(ctx context.Context, prefix string, data []byte, filename string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error

	GetFile(ctx context.Context, fileURL string) ([]byte, error)

	GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}
