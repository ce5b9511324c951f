package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/middleware"
)

type RouterDeps struct {
	Auth           *AuthHandler
	Books          *BookHandler
	Profiles       *ProfileHandler
	Notes          *NoteHandler
	Covers         *CoverHandler
	JWTSecret      []byte
	ResendCooldown time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/verify-email", deps.Auth.VerifyEmail)
	api.POST("/auth/reset-password", deps.Auth.ResetPassword)

	// issue operations carry the resend cooldown
	cooldown := middleware.RateLimit(deps.ResendCooldown)
	api.POST("/auth/resend-code", cooldown, deps.Auth.ResendCode)
	api.POST("/auth/forgot-password", cooldown, deps.Auth.ForgotPassword)

	api.GET("/books", deps.Books.List)
	api.GET("/books/:slug", deps.Books.Get)
	api.GET("/books/:slug/notes", deps.Books.PublicNotes)
	api.GET("/themes", deps.Books.Themes)
	api.GET("/themes/:slug", deps.Books.ThemeBooks)
	api.GET("/catalog/search", deps.Books.Search)
	api.GET("/covers/:key", deps.Covers.Get)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/auth/me", deps.Auth.Me)
	authGroup.POST("/catalog/import", deps.Books.Import)
	authGroup.POST("/themes", deps.Books.CreateTheme)
	authGroup.POST("/themes/:slug/books", deps.Books.AttachTheme)

	authGroup.GET("/profile", deps.Profiles.Get)
	authGroup.PUT("/profile", deps.Profiles.Update)
	authGroup.GET("/shelves/:shelf", deps.Profiles.ListShelf)
	authGroup.POST("/shelves/:shelf", deps.Profiles.AddToShelf)
	authGroup.DELETE("/shelves/:shelf/:book_id", deps.Profiles.RemoveFromShelf)

	authGroup.POST("/notes", deps.Notes.Create)
	authGroup.GET("/notes", deps.Notes.ListMine)
	authGroup.PUT("/notes/:id", deps.Notes.Update)
	authGroup.DELETE("/notes/:id", deps.Notes.Delete)
}
