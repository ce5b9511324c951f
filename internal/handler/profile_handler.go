package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
	"github.com/bookhubapp/bookhub/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

type profileUpdateRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), getUserID(c), req.Bio, req.Avatar)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

type shelfRequest struct {
	BookID string `json:"book_id"`
}

func (h *ProfileHandler) AddToShelf(c *gin.Context) {
	var req shelfRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == "" {
		response.Error(c, errcode.ErrInvalid, "book_id required")
		return
	}
	if err := h.profiles.AddToShelf(c.Request.Context(), getUserID(c), req.BookID, c.Param("shelf")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ProfileHandler) RemoveFromShelf(c *gin.Context) {
	if err := h.profiles.RemoveFromShelf(c.Request.Context(), getUserID(c), c.Param("book_id"), c.Param("shelf")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ProfileHandler) ListShelf(c *gin.Context) {
	books, err := h.profiles.ListShelf(c.Request.Context(), getUserID(c), c.Param("shelf"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"books": books})
}
