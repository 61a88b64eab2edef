package postgres

import (
	"context"
	"fmt"

	"weshow/internal/domain/studio"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StudioRepository struct {
	db *DB
}

func NewStudioRepository(db *DB) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) Create(ctx context.Context, input studio.CreateStudioInput) (*studio.Studio, error) {
	query := `
		INSERT INTO studios (id, email, password_hash, name, phone, website, active)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, TRUE)
		RETURNING id, email, password_hash, name, logo_url, phone, website, active, created_at, updated_at
	`

	s := &studio.Studio{}
	err := r.db.Pool.QueryRow(ctx, query, uuid.New(), input.Email, input.PasswordHash, input.Name, input.Phone, input.Website).Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.LogoURL, &s.Phone, &s.Website, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("a studio with this email already exists")
		}
		return nil, errFailedCreateStudio(err)
	}

	return s, nil
}

func (r *StudioRepository) GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error) {
	query := `
		SELECT id, email, password_hash, name, logo_url, phone, website, active, created_at, updated_at
		FROM studios WHERE id = $1
	`

	s := &studio.Studio{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.LogoURL, &s.Phone, &s.Website, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errStudioNotFound)
		}
		return nil, errFailedGetStudio(err)
	}

	return s, nil
}

// GetByEmail matches case-insensitively; emails are stored lowercased.
func (r *StudioRepository) GetByEmail(ctx context.Context, email string) (*studio.Studio, error) {
	query := `
		SELECT id, email, password_hash, name, logo_url, phone, website, active, created_at, updated_at
		FROM studios WHERE email = LOWER($1)
	`

	s := &studio.Studio{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.LogoURL, &s.Phone, &s.Website, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errStudioNotFound)
		}
		return nil, errFailedGetStudio(err)
	}

	return s, nil
}

func (r *StudioRepository) List(ctx context.Context) ([]*studio.Studio, error) {
	query := `
		SELECT id, email, password_hash, name, logo_url, phone, website, active, created_at, updated_at
		FROM studios ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListStudios(err)
	}
	defer rows.Close()

	var studios []*studio.Studio
	for rows.Next() {
		s := &studio.Studio{}
		if err := rows.Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.LogoURL, &s.Phone, &s.Website, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, errFailedScanStudio(err)
		}
		studios = append(studios, s)
	}

	return studios, rows.Err()
}

func (r *StudioRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := "UPDATE studios SET active = $2, updated_at = NOW() WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id, active)
	if err != nil {
		return errFailedUpdateStudio(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errStudioNotFound)
	}

	return nil
}

func (r *StudioRepository) Update(ctx context.Context, id uuid.UUID, input studio.UpdateStudioInput) error {
	query := "UPDATE studios SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}
	if input.LogoURL != nil {
		argCount++
		query += fmt.Sprintf(", logo_url = $%d", argCount)
		args = append(args, *input.LogoURL)
	}
	if input.Phone != nil {
		argCount++
		query += fmt.Sprintf(", phone = $%d", argCount)
		args = append(args, *input.Phone)
	}
	if input.Website != nil {
		argCount++
		query += fmt.Sprintf(", website = $%d", argCount)
		args = append(args, *input.Website)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateStudio(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errStudioNotFound)
	}

	return nil
}
