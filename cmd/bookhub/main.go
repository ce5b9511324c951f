package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/bookhubapp/bookhub/internal/catalog"
	"github.com/bookhubapp/bookhub/internal/config"
	"github.com/bookhubapp/bookhub/internal/db"
	"github.com/bookhubapp/bookhub/internal/filestore"
	"github.com/bookhubapp/bookhub/internal/handler"
	"github.com/bookhubapp/bookhub/internal/job"
	"github.com/bookhubapp/bookhub/internal/middleware"
	"github.com/bookhubapp/bookhub/internal/repo"
	"github.com/bookhubapp/bookhub/internal/schedule"
	"github.com/bookhubapp/bookhub/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bookhub",
		Short: "bookhub backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run bookhub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	otpRepo := repo.NewOtpRepo(conn)
	bookRepo := repo.NewBookRepo(conn)
	themeRepo := repo.NewThemeRepo(conn)
	profileRepo := repo.NewProfileRepo(conn)
	shelfRepo := repo.NewShelfRepo(conn)
	noteRepo := repo.NewNoteRepo(conn)

	mailSender := service.NewEmailSender(cfg.Mail)
	otpService := service.NewOtpService(
		userRepo,
		otpRepo,
		mailSender,
		time.Duration(cfg.Otp.ValiditySeconds)*time.Second,
		cfg.BaseURL,
	)
	authService := service.NewAuthService(userRepo, otpService, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, time.Duration(cfg.Catalog.TimeoutSecs)*time.Second)
	cachedCatalog, err := catalog.NewCachedClient(catalogClient, cfg.Catalog.CacheSize, time.Hour)
	if err != nil {
		return fmt.Errorf("init catalog cache: %w", err)
	}
	catalogService := service.NewCatalogService(cachedCatalog, bookRepo, store, cfg.BaseURL)
	bookService := service.NewBookService(bookRepo, themeRepo)
	profileService := service.NewProfileService(profileRepo, shelfRepo, bookRepo)
	noteService := service.NewNoteService(noteRepo, bookRepo)

	deps := handler.RouterDeps{
		Auth:           handler.NewAuthHandler(authService, otpService),
		Books:          handler.NewBookHandler(bookService, catalogService, noteService),
		Profiles:       handler.NewProfileHandler(profileService),
		Notes:          handler.NewNoteHandler(noteService),
		Covers:         handler.NewCoverHandler(store),
		JWTSecret:      []byte(cfg.JWTSecret),
		ResendCooldown: time.Duration(cfg.Otp.ResendCooldownSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	cleanup := job.NewAccountCleanupJob(userRepo, otpRepo, time.Duration(cfg.Otp.CleanupAgeMinutes)*time.Minute)
	if err := scheduler.AddJob(cleanup, "* * * * *"); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
