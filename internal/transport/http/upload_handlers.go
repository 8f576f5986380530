package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/uploads"
)

// formOverhead leaves room for multipart boundaries and headers on top of
// the file payload cap.
const formOverhead = 64 << 10

// UploadHandlers implements the avatar upload collaborator endpoint.
type UploadHandlers struct {
	service  *uploads.Service
	maxBytes int64
	log      *zerolog.Logger
}

// NewUploadHandlers creates a new upload handlers instance.
func NewUploadHandlers(service *uploads.Service, maxBytes int64, logger *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{
		service:  service,
		maxBytes: maxBytes,
		log:      logger,
	}
}

// UploadResponse carries the URL a client may set as its avatar.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts a single image file under the "file" form field.
// POST /api/upload
func (h *UploadHandlers) Upload(c *gin.Context) {
	// Refuse oversize bodies before buffering them.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: uploads.ErrTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: uploads.ErrNoFile.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	defer file.Close()

	url, err := h.service.Save(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
		case uploads.IsValidationError(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.log.Error().Err(err).Msg("failed to store upload")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
