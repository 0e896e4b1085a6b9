package port

import (
	"context"
	"io"
)

// UploadInput describes one source file to archive.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where an archived file landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage archives uploaded import files. Archived copies are
// write-only from the import flow's point of view.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
