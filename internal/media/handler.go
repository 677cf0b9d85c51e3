package media

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cat-resume-api/internal/shared/server/respond"
	"cat-resume-api/internal/shared/storage/object"
	"cat-resume-api/internal/shared/telemetry"
)

// AudioHandler streams generated narration back out of the object store, so
// audio URLs resolve whichever backend holds the files.
type AudioHandler struct {
	Store object.ObjectStore
}

// NewAudioHandler constructs an AudioHandler.
func NewAudioHandler(store object.ObjectStore) *AudioHandler {
	return &AudioHandler{Store: store}
}

// Serve handles GET /audio/*file.
func (h *AudioHandler) Serve(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("file"), "/")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		respond.Error(c, http.StatusNotFound, "not_found", "audio not found", nil)
		return
	}

	key := audioKeyPrefix + name
	reader, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound), errors.Is(err, object.ErrInvalidKey):
			respond.Error(c, http.StatusNotFound, "not_found", "audio not found", nil)
		default:
			telemetry.Error("media.audio.open_failed", map[string]any{"key": key, "error": err})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load audio", nil)
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
