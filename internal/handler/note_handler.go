package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
	"github.com/bookhubapp/bookhub/internal/service"
)

type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteRequest struct {
	BookID   string `json:"book_id"`
	Note     string `json:"note"`
	IsPublic bool   `json:"is_public"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == "" {
		response.Error(c, errcode.ErrInvalid, "book_id and note required")
		return
	}
	note, err := h.notes.Create(c.Request.Context(), getUserID(c), req.BookID, req.Note, req.IsPublic)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

type noteUpdateRequest struct {
	Note     string `json:"note"`
	IsPublic bool   `json:"is_public"`
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req noteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	note, err := h.notes.Update(c.Request.Context(), getUserID(c), c.Param("id"), req.Note, req.IsPublic)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *NoteHandler) ListMine(c *gin.Context) {
	notes, err := h.notes.ListMine(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"notes": notes})
}
