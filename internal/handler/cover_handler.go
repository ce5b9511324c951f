package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/filestore"
	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
)

// CoverHandler serves mirrored cover images from the local store; the
// s3 store exposes direct URLs instead.
type CoverHandler struct {
	store filestore.Store
}

func NewCoverHandler(store filestore.Store) *CoverHandler {
	return &CoverHandler{store: store}
}

func (h *CoverHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") {
		response.Error(c, errcode.ErrInvalid, "invalid key")
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		response.Error(c, errcode.ErrNotFound, "not found")
		return
	}
	defer func() { _ = file.Close() }()
	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
