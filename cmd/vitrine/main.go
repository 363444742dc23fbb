package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/vitrine/internal/assetstore"
	"github.com/vbonduro/vitrine/internal/assetstore/cloudinary"
	"github.com/vbonduro/vitrine/internal/assetstore/local"
	"github.com/vbonduro/vitrine/internal/auth"
	"github.com/vbonduro/vitrine/internal/config"
	"github.com/vbonduro/vitrine/internal/db"
	"github.com/vbonduro/vitrine/internal/domain"
	"github.com/vbonduro/vitrine/internal/logging"
	"github.com/vbonduro/vitrine/internal/service"
	"github.com/vbonduro/vitrine/internal/store"
	"github.com/vbonduro/vitrine/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal error", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	adminStore := store.NewAdminStore(database)
	categoryStore := store.NewCategoryStore(database)
	imageStore := store.NewImageStore(database)

	uploader, opener, err := newAssetBackend(cfg, logger)
	if err != nil {
		return err
	}

	services := web.Services{
		Accounts:   service.NewAccountService(adminStore, logger),
		Categories: service.NewCategoryService(categoryStore, logger),
		Images:     service.NewImageService(imageStore, uploader, logger),
		Stats:      service.NewStatsService(imageStore),
	}

	if err := bootstrapAdmin(ctx, services.Accounts, cfg, logger); err != nil {
		return err
	}

	secret, err := sessionSecret(cfg, logger)
	if err != nil {
		return err
	}

	server := web.NewServer(services, auth.NewSessions(secret, auth.SessionTTL), opener, web.Options{
		CookieName:     cfg.SessionCookie,
		CookieSecure:   cfg.SessionCookieSecure,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
	}, logger)

	return server.ListenAndServe(ctx, cfg.ListenAddr)
}

// newAssetBackend returns the uploader for new images and, for the local
// backend, the opener that serves them back.
func newAssetBackend(cfg *config.Config, logger *slog.Logger) (assetstore.Uploader, assetstore.Opener, error) {
	switch cfg.AssetBackend {
	case "cloudinary":
		if cfg.CloudinaryCloud == "" || cfg.CloudinaryPreset == "" {
			return nil, nil, errors.New("CLOUDINARY_CLOUD_NAME and CLOUDINARY_UPLOAD_PRESET are required when ASSET_BACKEND=cloudinary")
		}
		logger.Info("using Cloudinary asset backend", "cloud", cfg.CloudinaryCloud)
		up, err := cloudinary.NewUploader(cfg.CloudinaryCloud, cfg.CloudinaryPreset)
		if err != nil {
			return nil, nil, err
		}
		return up.WithBaseURL(cfg.CloudinaryBaseURL), nil, nil
	default:
		logger.Info("using local asset backend", "path", cfg.AssetPath)
		st, err := local.New(cfg.AssetPath, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize asset store: %w", err)
		}
		return st, st, nil
	}
}

func bootstrapAdmin(ctx context.Context, accounts *service.AccountService, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminUsername == "" && cfg.AdminPassword == "" {
		return nil
	}
	created, err := accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if errors.Is(err, domain.ErrValidation) {
		logger.Warn("admin bootstrap skipped", "reason", err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if !created {
		logger.Debug("admin account already exists, bootstrap skipped")
	}
	return nil
}

func sessionSecret(cfg *config.Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), nil
	}
	logger.Warn("SESSION_SECRET is not set; using a random secret, sessions will not survive a restart")
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	return secret, nil
}
