package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
)

// PostgresInvitationRepository implements the InvitationRepository
// interface. There is deliberately no Delete: resolved invitations stay
// around as an audit trail.
type PostgresInvitationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(config *RepositoryConfig) repositories.InvitationRepository {
	return &PostgresInvitationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new invitation and assigns its ID
func (r *PostgresInvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, folder_name, owner_id, owner_name, invitee_email,
		                can_upload, can_comment, can_delete, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, r.tables.Invitations)

	err := r.pool.QueryRow(ctx, query,
		inv.FolderID,
		inv.FolderName,
		inv.OwnerID,
		inv.OwnerName,
		inv.InviteeEmail,
		inv.Permission.CanUpload,
		inv.Permission.CanComment,
		inv.Permission.CanDelete,
		inv.Status,
		inv.CreatedAt,
	).Scan(&inv.ID, &inv.CreatedAt)

	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

// GetByID retrieves an invitation by ID
func (r *PostgresInvitationRepository) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, folder_name, owner_id, owner_name, invitee_email,
		       can_upload, can_comment, can_delete, status, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Invitations)

	inv, err := scanInvitation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("invitation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return inv, nil
}

// ListPendingByEmail retrieves pending invitations addressed to the given
// normalized email, oldest first
func (r *PostgresInvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, folder_name, owner_id, owner_name, invitee_email,
		       can_upload, can_comment, can_delete, status, created_at
		FROM %s
		WHERE invitee_email = $1 AND status = $2
		ORDER BY created_at ASC
	`, r.tables.Invitations)

	rows, err := r.pool.Query(ctx, query, email, models.InvitationPending)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitations: %w", err)
	}

	return invitations, nil
}

// UpdateStatus transitions the invitation from `from` to `to` atomically.
// The WHERE clause carries the expected current status, so a lost race or
// a repeat call surfaces as zero affected rows rather than a silent
// overwrite of a terminal state.
func (r *PostgresInvitationRepository) UpdateStatus(ctx context.Context, id string, from, to models.InvitationStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3
		WHERE id = $1 AND status = $2
	`, r.tables.Invitations)

	result, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update invitation status: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// Distinguish "already resolved" from "does not exist".
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != from {
		return fmt.Errorf("invitation %s is %s: %w", id, existing.Status, domain.ErrInvitationResolved)
	}
	return fmt.Errorf("invitation %s: %w", id, domain.ErrNotFound)
}

func scanInvitation(row rowScanner) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.FolderID,
		&inv.FolderName,
		&inv.OwnerID,
		&inv.OwnerName,
		&inv.InviteeEmail,
		&inv.Permission.CanUpload,
		&inv.Permission.CanComment,
		&inv.Permission.CanDelete,
		&inv.Status,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
