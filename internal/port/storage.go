package port

import (
	"context"
	"io"
	"time"
)

// UploadInput describes an object to store. Filename, when set, is served
// back as the attachment name on download.
type UploadInput struct {
	Bucket      string
	Key         string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage is where exported reports are archived.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// GetPresignedURL returns a time-limited GET link for an archived object.
	GetPresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
