package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
	"github.com/bookhubapp/bookhub/internal/repo"
	"github.com/bookhubapp/bookhub/internal/service"
)

type BookHandler struct {
	books   *service.BookService
	catalog *service.CatalogService
	notes   *service.NoteService
}

func NewBookHandler(books *service.BookService, catalog *service.CatalogService, notes *service.NoteService) *BookHandler {
	return &BookHandler{books: books, catalog: catalog, notes: notes}
}

func (h *BookHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	filter := repo.BookFilter{
		CuratedOnly:  c.Query("curated") == "1",
		FeaturedOnly: c.Query("featured") == "1",
		Offset:       uint(offset),
		Limit:        uint(limit),
	}
	books, err := h.books.Browse(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"books": books})
}

func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.books.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, book)
}

func (h *BookHandler) PublicNotes(c *gin.Context) {
	book, err := h.books.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	notes, err := h.notes.PublicForBook(c.Request.Context(), book.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"notes": notes})
}

func (h *BookHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "q is required")
		return
	}
	maxResults, _ := strconv.Atoi(c.DefaultQuery("max", "10"))
	volumes, err := h.catalog.Search(c.Request.Context(), query, maxResults)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": volumes})
}

type importRequest struct {
	VolumeID string `json:"volume_id"`
	Curated  bool   `json:"curated"`
}

func (h *BookHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VolumeID == "" {
		response.Error(c, errcode.ErrInvalid, "volume_id required")
		return
	}
	book, err := h.catalog.Import(c.Request.Context(), req.VolumeID, req.Curated)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, book)
}

type themeRequest struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	SortOrder int    `json:"sort_order"`
}

func (h *BookHandler) CreateTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Error(c, errcode.ErrInvalid, "name required")
		return
	}
	theme, err := h.books.CreateTheme(c.Request.Context(), req.Name, req.Tagline, req.SortOrder)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, theme)
}

type attachThemeRequest struct {
	BookID      string `json:"book_id"`
	CuratorPick bool   `json:"curator_pick"`
}

func (h *BookHandler) AttachTheme(c *gin.Context) {
	var req attachThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == "" {
		response.Error(c, errcode.ErrInvalid, "book_id required")
		return
	}
	if err := h.books.AttachToTheme(c.Request.Context(), c.Param("slug"), req.BookID, req.CuratorPick); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *BookHandler) Themes(c *gin.Context) {
	themes, err := h.books.ListThemes(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"themes": themes})
}

func (h *BookHandler) ThemeBooks(c *gin.Context) {
	theme, books, err := h.books.ThemeBooks(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": theme, "books": books})
}
