package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// UploadRecord describes one stored avatar file.
type UploadRecord struct {
	ID           string
	OriginalName string
	StoredName   string
	ContentType  string
	Size         int64
	CreatedAt    time.Time
}

// Store persists the uploads ledger.
type Store interface {
	RecordUpload(ctx context.Context, rec *UploadRecord) error
	GetUpload(ctx context.Context, storedName string) (*UploadRecord, error)
	ListUploads(ctx context.Context) ([]*UploadRecord, error)
	Close() error
}
