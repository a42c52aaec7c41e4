package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface.
// The permissions map is stored as JSONB and the grantee set as a text
// array; every grant mutation updates both columns in one statement so
// the set/map invariant cannot be observed broken.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new folder and assigns its ID
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	perms, err := marshalPermissions(folder.Permissions)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, owner_id, owner_name, grantee_ids, permissions, video_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err = r.pool.QueryRow(ctx, query,
		folder.Name,
		folder.OwnerID,
		folder.OwnerName,
		granteeIDsOrEmpty(folder.GranteeIDs),
		perms,
		folder.VideoCount,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, owner_id, owner_name, grantee_ids, permissions, video_count, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	folder, err := scanFolder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// ListByOwner retrieves all folders owned by the given athlete
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, owner_id, owner_name, grantee_ids, permissions, video_count, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	return r.listFolders(ctx, query, ownerID)
}

// ListByGrantee retrieves all folders shared with the given coach
func (r *PostgresFolderRepository) ListByGrantee(ctx context.Context, granteeID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, owner_id, owner_name, grantee_ids, permissions, video_count, created_at, updated_at
		FROM %s
		WHERE $1 = ANY(grantee_ids)
		ORDER BY created_at ASC
	`, r.tables.Folders)

	return r.listFolders(ctx, query, granteeID)
}

// AddGrant inserts or replaces the coach's permission entry. The
// grantee_ids update removes before appending so a repeated grant cannot
// produce a duplicate set entry.
func (r *PostgresFolderRepository) AddGrant(ctx context.Context, folderID, granteeID string, perm models.Permission) error {
	entry, err := json.Marshal(map[string]models.Permission{granteeID: perm})
	if err != nil {
		return fmt.Errorf("marshal permission entry: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET grantee_ids = array_append(array_remove(grantee_ids, $2), $2),
		    permissions = permissions || $3::jsonb,
		    updated_at = now()
		WHERE id = $1
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, folderID, granteeID, entry)
	if err != nil {
		return fmt.Errorf("add grant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return nil
}

// RemoveGrant removes the coach from the grantee set and permission map
func (r *PostgresFolderRepository) RemoveGrant(ctx context.Context, folderID, granteeID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET grantee_ids = array_remove(grantee_ids, $2),
		    permissions = permissions - $2,
		    updated_at = now()
		WHERE id = $1
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, folderID, granteeID)
	if err != nil {
		return fmt.Errorf("remove grant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return nil
}

// AdjustVideoCount shifts the cached video count by delta (floored at zero)
func (r *PostgresFolderRepository) AdjustVideoCount(ctx context.Context, folderID string, delta int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET video_count = GREATEST(video_count + $2, 0),
		    updated_at = now()
		WHERE id = $1
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, folderID, delta)
	if err != nil {
		return fmt.Errorf("adjust video count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) listFolders(ctx context.Context, query string, arg any) ([]models.Folder, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var (
		folder models.Folder
		perms  []byte
	)
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.OwnerID,
		&folder.OwnerName,
		&folder.GranteeIDs,
		&perms,
		&folder.VideoCount,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	folder.Permissions = map[string]models.Permission{}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &folder.Permissions); err != nil {
			return nil, fmt.Errorf("unmarshal permissions: %w", err)
		}
	}
	if folder.GranteeIDs == nil {
		folder.GranteeIDs = []string{}
	}

	return &folder, nil
}

func marshalPermissions(perms map[string]models.Permission) ([]byte, error) {
	if perms == nil {
		perms = map[string]models.Permission{}
	}
	data, err := json.Marshal(perms)
	if err != nil {
		return nil, fmt.Errorf("marshal permissions: %w", err)
	}
	return data, nil
}

func granteeIDsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
