package postgres

import (
	"context"
	"fmt"

	"weshow/internal/domain/client"
	"weshow/internal/slug"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `
	c.id, c.studio_id, c.name, c.slug, c.contact_name, c.contact_email,
	c.phone, c.address, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM projects p WHERE p.client_id = c.id) AS project_count
`

func scanClient(row pgx.Row) (*client.Client, error) {
	c := &client.Client{}
	err := row.Scan(
		&c.ID, &c.StudioID, &c.Name, &c.Slug, &c.ContactName, &c.ContactEmail,
		&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt, &c.ProjectCount,
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Create stores the derived slug alongside the name. Slug uniqueness is not
// enforced; lookup order in the resolver decides collisions.
func (r *ClientRepository) Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	query := `
		INSERT INTO clients (id, studio_id, name, slug, contact_name, contact_email, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, studio_id, name, slug, contact_name, contact_email, phone, address, created_at, updated_at, 0
	`

	c, err := scanClient(r.db.Pool.QueryRow(ctx, query,
		uuid.New(), input.StudioID, input.Name, slug.Make(input.Name),
		input.ContactName, input.ContactEmail, input.Phone, input.Address,
	))

	if err != nil {
		return nil, errFailedCreateClient(err)
	}

	return c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients c WHERE c.id = $1"

	c, err := scanClient(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errClientNotFound)
		}
		return nil, errFailedGetClient(err)
	}

	return c, nil
}

func (r *ClientRepository) ListClients(ctx context.Context, studioID uuid.UUID) ([]*client.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients c WHERE c.studio_id = $1 ORDER BY c.created_at ASC"

	rows, err := r.db.Pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, errFailedListClients(err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, errFailedScanClient(err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) error {
	query := "UPDATE clients SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)

		argCount++
		query += fmt.Sprintf(", slug = $%d", argCount)
		args = append(args, slug.Make(*input.Name))
	}
	if input.ContactName != nil {
		argCount++
		query += fmt.Sprintf(", contact_name = $%d", argCount)
		args = append(args, *input.ContactName)
	}
	if input.ContactEmail != nil {
		argCount++
		query += fmt.Sprintf(", contact_email = $%d", argCount)
		args = append(args, *input.ContactEmail)
	}
	if input.Phone != nil {
		argCount++
		query += fmt.Sprintf(", phone = $%d", argCount)
		args = append(args, *input.Phone)
	}
	if input.Address != nil {
		argCount++
		query += fmt.Sprintf(", address = $%d", argCount)
		args = append(args, *input.Address)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateClient(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}

// Delete cascades to the client's projects via the schema's FK, so galleries
// never outlive their client.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM clients WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteClient(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}
