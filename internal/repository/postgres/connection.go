package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Folders     string
	Invitations string
	Videos      string
	Comments    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:     fmt.Sprintf("%sfolders", prefix),
		Invitations: fmt.Sprintf("%sinvitations", prefix),
		Videos:      fmt.Sprintf("%svideos", prefix),
		Comments:    fmt.Sprintf("%scomments", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic
// PgBouncer compatibility.
//
// By default pgx prepares statements (QueryExecModeCacheStatement), which
// Supabase's transaction pooler on port 6543 does not support. When that
// port is detected and the user has not overridden the mode in the
// connection string, we switch to QueryExecModeCacheDescribe: it still
// uses the extended protocol (needed for proper JSONB encoding of the
// permissions map) but caches statement descriptions instead of prepared
// statements.
//
// Note on dynamic table names: interpolating the per-environment prefix
// with fmt.Sprintf is safe because the SQL string is assembled before it
// is sent to the database; each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
