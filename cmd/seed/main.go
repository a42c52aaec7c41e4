package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"filmroom/internal/auth"
	"filmroom/internal/config"
	"filmroom/internal/entitlements"
	"filmroom/internal/notify"
	"filmroom/internal/repository/postgres"
	"filmroom/internal/seed"
	"filmroom/internal/service/access"
	"filmroom/internal/storage/minio"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Setting up database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatalf("SUPABASE_URL and SUPABASE_KEY are required to seed demo accounts")
	}

	// Create repositories and services; the seeder goes through the
	// service layer so seeded data obeys the same rules as live traffic.
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	inviteRepo := postgres.NewInvitationRepository(repoConfig)
	videoRepo := postgres.NewVideoRepository(repoConfig)

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

	plans, err := entitlements.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize entitlements registry: %v", err)
	}

	notifier := notify.NewLogNotifier(logger)
	accessService := access.NewAccessService(folderRepo, inviteRepo, videoRepo, blobStore, plans, notifier, logger)
	videoService := access.NewVideoService(videoRepo, folderRepo, blobStore, accessService, plans, logger)

	adminClient := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	seeder := seed.NewDemoSeeder(adminClient, accessService, videoService, logger)

	log.Println("Seeding demo scenario...")
	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Println("Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create folders table
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			owner_id UUID NOT NULL,
			owner_name TEXT NOT NULL DEFAULT '',
			grantee_ids TEXT[] NOT NULL DEFAULT '{}',
			permissions JSONB NOT NULL DEFAULT '{}',
			video_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create invitations table
	createInvitations := `
		CREATE TABLE IF NOT EXISTS ` + tables.Invitations + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			folder_id UUID NOT NULL,
			folder_name TEXT NOT NULL DEFAULT '',
			owner_id UUID NOT NULL,
			owner_name TEXT NOT NULL DEFAULT '',
			invitee_email TEXT NOT NULL,
			can_upload BOOLEAN NOT NULL DEFAULT TRUE,
			can_comment BOOLEAN NOT NULL DEFAULT TRUE,
			can_delete BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createInvitations); err != nil {
		return err
	}

	// Create videos table
	createVideos := `
		CREATE TABLE IF NOT EXISTS ` + tables.Videos + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			folder_id UUID NOT NULL,
			title TEXT NOT NULL,
			storage_key TEXT NOT NULL,
			thumbnail_key TEXT NOT NULL DEFAULT '',
			duration_sec INTEGER NOT NULL DEFAULT 0,
			uploaded_by UUID NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createVideos); err != nil {
		return err
	}

	// Create comments table (cascade with the video row)
	createComments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			video_id UUID NOT NULL REFERENCES ` + tables.Videos + `(id) ON DELETE CASCADE,
			author_id UUID NOT NULL,
			author_name TEXT NOT NULL DEFAULT '',
			text_body TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createComments); err != nil {
		return err
	}

	// Create indexes
	// Folder references from invitations and videos are intentionally not
	// FKs: the deletion cascade is an application-level, best-effort
	// process and invitations outlive their folder as an audit trail.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_owner ON ` + tables.Folders + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_grantees ON ` + tables.Folders + ` USING GIN(grantee_ids)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `invitations_email_status ON ` + tables.Invitations + `(invitee_email, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `videos_folder ON ` + tables.Videos + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_video ON ` + tables.Comments + `(video_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Comments,
		tables.Videos,
		tables.Invitations,
		tables.Folders,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}
