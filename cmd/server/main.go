package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"filmroom/internal/auth"
	"filmroom/internal/config"
	"filmroom/internal/entitlements"
	"filmroom/internal/handler"
	"filmroom/internal/middleware"
	"filmroom/internal/notify"
	"filmroom/internal/repository/postgres"
	"filmroom/internal/service/access"
	"filmroom/internal/storage/minio"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	inviteRepo := postgres.NewInvitationRepository(repoConfig)
	videoRepo := postgres.NewVideoRepository(repoConfig)

	// Object storage for video binaries
	blobStore, err := minio.New(minio.Config{
		Endpoint:  cfg.StorageEndpoint,
		Region:    cfg.StorageRegion,
		Bucket:    cfg.StorageBucket,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to create object store client: %v", err)
	}

	// Initialize entitlements registry
	plans, err := entitlements.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize entitlements registry: %v", err)
	}
	logger.Info("entitlements registry initialized")

	// Create services
	notifier := notify.NewLogNotifier(logger)
	accessService := access.NewAccessService(folderRepo, inviteRepo, videoRepo, blobStore, plans, notifier, logger)
	videoService := access.NewVideoService(videoRepo, folderRepo, blobStore, accessService, plans, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(accessService, logger)
	invitationHandler := handler.NewInvitationHandler(accessService, logger)
	videoHandler := handler.NewVideoHandler(videoService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("DELETE /api/folders/{id}/coaches/{coachID}", folderHandler.RevokeAccess)

	// Invitation routes
	mux.HandleFunc("POST /api/folders/{id}/invitations", invitationHandler.InviteCoach)
	mux.HandleFunc("GET /api/invitations", invitationHandler.ListPending)
	mux.HandleFunc("POST /api/invitations/{id}/accept", invitationHandler.Accept)
	mux.HandleFunc("POST /api/invitations/{id}/complete", invitationHandler.Complete)
	mux.HandleFunc("POST /api/invitations/{id}/decline", invitationHandler.Decline)

	// Video routes
	mux.HandleFunc("GET /api/folders/{id}/videos", videoHandler.ListVideos)
	mux.HandleFunc("POST /api/folders/{id}/videos", videoHandler.RegisterVideo)
	mux.HandleFunc("DELETE /api/videos/{id}", videoHandler.DeleteVideo)
	mux.HandleFunc("POST /api/videos/{id}/comments", videoHandler.AddComment)
	mux.HandleFunc("GET /api/videos/{id}/comments", videoHandler.ListComments)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	httpHandler = middleware.Auth(jwtVerifier, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
