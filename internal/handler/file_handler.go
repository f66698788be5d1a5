package handler

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/response"
	"github.com/noah-isme/exam-portal/pkg/storage"
)

type blobReader interface {
	Resolve(token string) (string, error)
	Open(ctx context.Context, key string) (*os.File, error)
}

// FileHandler streams stored evidence behind signed URLs.
type FileHandler struct {
	blobs  blobReader
	logger *zap.Logger
}

// NewFileHandler constructs the handler.
func NewFileHandler(blobs blobReader, logger *zap.Logger) *FileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileHandler{blobs: blobs, logger: logger}
}

// Download godoc
// @Summary Download stored file
// @Description Stream a blob referenced by a signed URL token
// @Tags Files
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /files/{token} [get]
func (h *FileHandler) Download(c *gin.Context) {
	key, err := h.blobs.Resolve(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired link"))
		return
	}

	file, err := h.blobs.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
			return
		}
		h.logger.Error("failed to open blob", zap.String("key", key), zap.Error(err))
		response.Error(c, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to open file"))
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to open file"))
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
