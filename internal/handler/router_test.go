package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/bookhubapp/bookhub/internal/config"
	"github.com/bookhubapp/bookhub/internal/filestore"
	"github.com/bookhubapp/bookhub/internal/handler"
	"github.com/bookhubapp/bookhub/internal/middleware"
	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/repo"
	"github.com/bookhubapp/bookhub/internal/service"
	"github.com/bookhubapp/bookhub/internal/testutil"
)

type noopSender struct{}

func (noopSender) Send(to, subject, body string) error {
	return nil
}

type routerEnv struct {
	router http.Handler
	users  *repo.UserRepo
	tokens *repo.OtpRepo
	books  *repo.BookRepo
}

func setupRouter(t *testing.T) (*routerEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	otpRepo := repo.NewOtpRepo(db)
	bookRepo := repo.NewBookRepo(db)
	themeRepo := repo.NewThemeRepo(db)
	profileRepo := repo.NewProfileRepo(db)
	shelfRepo := repo.NewShelfRepo(db)
	noteRepo := repo.NewNoteRepo(db)

	jwtSecret := []byte("test-secret")
	otpService := service.NewOtpService(userRepo, otpRepo, noopSender{}, 2*time.Minute, "http://127.0.0.1")
	authService := service.NewAuthService(userRepo, otpService, jwtSecret, time.Hour)

	tmpDir, err := os.MkdirTemp("", "bookhub-covers-*")
	require.NoError(t, err)
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": tmpDir},
	})
	require.NoError(t, err)

	catalogService := service.NewCatalogService(nil, bookRepo, store, "http://127.0.0.1")
	bookService := service.NewBookService(bookRepo, themeRepo)
	profileService := service.NewProfileService(profileRepo, shelfRepo, bookRepo)
	noteService := service.NewNoteService(noteRepo, bookRepo)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, otpService),
		Books:     handler.NewBookHandler(bookService, catalogService, noteService),
		Profiles:  handler.NewProfileHandler(profileService),
		Notes:     handler.NewNoteHandler(noteService),
		Covers:    handler.NewCoverHandler(store),
		JWTSecret: jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(middleware.CORS()),
	)
	require.NoError(t, err)

	env := &routerEnv{router: engine, users: userRepo, tokens: otpRepo, books: bookRepo}
	return env, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterVerifyLoginRoundTrip(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	resp := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "roundtrip@example.com",
		"username": "roundtrip",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// unverified accounts cannot log in
	resp = postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"identifier": "roundtrip",
		"password":   "secret123",
	})
	var loginResult struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &loginResult))
	require.NotZero(t, loginResult.Code)

	user, err := env.users.GetByUsername(context.Background(), "roundtrip")
	require.NoError(t, err)
	token, err := env.tokens.LatestForUser(context.Background(), user.ID)
	require.NoError(t, err)

	resp = postJSON(t, env.router, "/api/v1/auth/verify-email", map[string]string{
		"username": "roundtrip",
		"code":     token.Code,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"identifier": "roundtrip",
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	loginResult.Code = -1
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &loginResult))
	require.Zero(t, loginResult.Code)
	require.NotEmpty(t, loginResult.Data.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResult.Data.Token)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "roundtrip@example.com")
}

func TestPublicNotesDoesNotCountView(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	now := time.Now().Unix()
	book := &model.Book{
		ID:            "book-notes-view",
		GoogleBooksID: "vol-notes-view",
		Slug:          "notes-view-check",
		Title:         "Notes View Check",
		Ctime:         now,
		Mtime:         now,
	}
	require.NoError(t, env.books.Create(context.Background(), book))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/notes-view-check/notes", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	fetched, err := env.books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), fetched.ViewCount)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/notes-view-check", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	fetched, err = env.books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), fetched.ViewCount)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	resp := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "reset@example.com",
		"username": "resetuser",
		"password": "oldpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	user, err := env.users.GetByUsername(context.Background(), "resetuser")
	require.NoError(t, err)
	token, err := env.tokens.LatestForUser(context.Background(), user.ID)
	require.NoError(t, err)
	resp = postJSON(t, env.router, "/api/v1/auth/verify-email", map[string]string{
		"username": "resetuser",
		"code":     token.Code,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = postJSON(t, env.router, "/api/v1/auth/forgot-password", map[string]string{
		"email": "reset@example.com",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	token, err = env.tokens.LatestForUser(context.Background(), user.ID)
	require.NoError(t, err)
	resp = postJSON(t, env.router, "/api/v1/auth/reset-password", map[string]string{
		"username":         "resetuser",
		"code":             token.Code,
		"new_password":     "newpass456",
		"confirm_password": "newpass456",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"identifier": "resetuser",
		"password":   "newpass456",
	})
	var loginResult struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &loginResult))
	require.Zero(t, loginResult.Code)
}
