package postgres

import (
	"context"

	"weshow/internal/domain/studio"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MasterAdminRepository struct {
	db *DB
}

func NewMasterAdminRepository(db *DB) *MasterAdminRepository {
	return &MasterAdminRepository{db: db}
}

func (r *MasterAdminRepository) GetByEmail(ctx context.Context, email string) (*studio.MasterAdmin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM master_admins WHERE email = LOWER($1)
	`

	a := &studio.MasterAdmin{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAdminNotFound)
		}
		return nil, errFailedGetAdmin(err)
	}

	return a, nil
}

func (r *MasterAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*studio.MasterAdmin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM master_admins WHERE id = $1
	`

	a := &studio.MasterAdmin{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAdminNotFound)
		}
		return nil, errFailedGetAdmin(err)
	}

	return a, nil
}
