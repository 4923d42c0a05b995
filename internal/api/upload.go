package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// UploadHandler serves stored recipe images at /uploads/:name
type UploadHandler struct {
	images service.ImageStore
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(images service.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// RegisterRoutes registers the upload routes on the engine root
func (h *UploadHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/uploads/:name", h.ServeImage)
	router.HEAD("/uploads/:name", h.ServeImage)
}

// ServeImage streams a stored image back with its original bytes
func (h *UploadHandler) ServeImage(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.images.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondMessage(c, http.StatusNotFound, "Image not found")
			return
		}
		logging.Error().Err(err).Str("file", name).Msg("Failed to open image")
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	defer rc.Close()

	if rs, ok := rc.(io.ReadSeeker); ok {
		var modTime time.Time
		if st, ok := rc.(interface{ Stat() (os.FileInfo, error) }); ok {
			if info, err := st.Stat(); err == nil {
				modTime = info.ModTime()
			}
		}
		http.ServeContent(c.Writer, c.Request, name, modTime, rs)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
