// @title Upkeep Vendor Import API
// @version 1.0
// @description Turns vendor lists (CSV, PDF, Word, spreadsheets, images) into vendor records.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"upkeep/internal/ai/providers"
	"upkeep/internal/config"
	"upkeep/internal/handler"
	"upkeep/internal/ocr"
	"upkeep/internal/port"
	"upkeep/internal/raster"
	"upkeep/internal/repository"
	"upkeep/internal/router"
	"upkeep/internal/service"
	s3storage "upkeep/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	vendors, closeStore, err := repository.OpenVendorStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open vendor store: %w", err)
	}
	defer func() { _ = closeStore() }()

	aiClient, err := providers.NewClient(&cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to initialize AI providers: %w", err)
	}
	if !aiClient.IsAvailable() {
		log.Printf("server: no AI provider has an API key; only CSV imports will work")
	}

	var archive port.ObjectStorage
	if cfg.Import.ArchiveUploads {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	importSvc, err := service.NewImportService(
		vendors,
		aiClient,
		raster.New(),
		ocr.NewTesseractEngine(cfg.Extract.OCRLanguage),
		archive,
		cfg,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize import service: %w", err)
	}

	maxBytes := cfg.Import.MaxFileSizeBytes()
	r := router.Setup(
		handler.NewImportHandler(importSvc, maxBytes),
		handler.NewHealthHandler(vendors),
		cfg.CORS.AllowedOrigins,
		maxBytes,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
