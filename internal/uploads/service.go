// Package uploads implements the avatar upload collaborator: it validates
// and stores image files and hands back URLs under the prefix the core's
// avatar validation accepts.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/store"
)

var (
	// ErrNoFile means the request carried no file part.
	ErrNoFile = errors.New("no file provided")
	// ErrEmptyFile means the file part had zero bytes.
	ErrEmptyFile = errors.New("file is empty")
	// ErrBadExtension means the filename extension is not an allowed image type.
	ErrBadExtension = errors.New("file extension not allowed")
	// ErrTooLarge means the payload exceeds the configured cap.
	ErrTooLarge = errors.New("file too large")
	// ErrNotImage means the content does not sniff as an image.
	ErrNotImage = errors.New("file content is not an image")
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// Service stores validated avatar images on disk under generated names and
// records each one in the ledger.
type Service struct {
	dir      string
	maxBytes int64
	store    store.Store
	log      *zerolog.Logger
}

// NewService builds a service writing into dir, creating it if needed.
func NewService(dir string, maxBytes int64, st store.Store, logger *zerolog.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{dir: dir, maxBytes: maxBytes, store: st, log: logger}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Service) Dir() string {
	return s.dir
}

// Save validates the file and stores it under a generated name. On success
// it returns the URL the client may set as its avatar.
func (s *Service) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(sanitizeFilename(originalName)))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrBadExtension, ext)
	}

	// Read one byte past the cap so oversize payloads are detected without
	// buffering the whole body.
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: cap is %d bytes", ErrTooLarge, s.maxBytes)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}

	storedName := uuid.NewString() + ext
	path := filepath.Join(s.dir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	rec := &store.UploadRecord{
		ID:           uuid.NewString(),
		OriginalName: sanitizeFilename(originalName),
		StoredName:   storedName,
		ContentType:  mime.String(),
		Size:         int64(len(data)),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.RecordUpload(ctx, rec); err != nil {
		// The ledger is bookkeeping; the file is already usable.
		s.log.Warn().Err(err).Str("stored_name", storedName).Msg("failed to record upload")
	}

	s.log.Info().Str("stored_name", storedName).Int("size", len(data)).Str("mime", mime.String()).Msg("avatar stored")
	return core.AvatarURLPrefix + storedName, nil
}

// sanitizeFilename strips path components so a crafted filename cannot
// escape the upload directory.
func sanitizeFilename(filename string) string {
	clean := filepath.Base(filepath.Clean(filename))
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "." || clean == ".." || clean == "" {
		return "unnamed"
	}
	return clean
}

// IsValidationError reports whether err is one of the upload validation
// failures that should surface to the initiating client.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrBadExtension) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrNotImage)
}
