package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"weshow/internal/domain/project"
	"weshow/internal/registry"
	"weshow/internal/slug"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	id, client_id, name, slug, status, tags, hero_photo_url, photos, videos, last_update, created_at
`

// Media collections live in jsonb columns; they are marshalled explicitly so
// the wire format stays under our control.
func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	var photosJSON, videosJSON []byte

	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Slug, &p.Status, &p.Tags,
		&p.HeroPhotoURL, &photosJSON, &videosJSON, &p.LastUpdate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(photosJSON) > 0 {
		if err := json.Unmarshal(photosJSON, &p.Photos); err != nil {
			return nil, err
		}
	}
	if len(videosJSON) > 0 {
		if err := json.Unmarshal(videosJSON, &p.Videos); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// CreateProject refuses an empty deliverable selection before touching the
// database, then folds any custom labels into the studio's tag palette.
func (r *ProjectRepository) CreateProject(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	if len(input.Tags) == 0 {
		return nil, apperrors.Validation(errNoDeliverables)
	}

	status := input.Status
	if status == "" {
		status = project.StatusDraft
	}
	if err := status.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	query := `
		INSERT INTO projects (id, client_id, name, slug, status, tags, photos, videos, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, '[]'::jsonb, '[]'::jsonb, NOW())
		RETURNING ` + projectColumns

	p, err := scanProject(r.db.Pool.QueryRow(ctx, query,
		uuid.New(), input.ClientID, input.Name, slug.Make(input.Name), status, input.Tags,
	))

	if err != nil {
		return nil, errFailedCreateProject(err)
	}

	if err := r.adoptTags(ctx, p.ClientID, p.Tags); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE id = $1"

	p, err := scanProject(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE client_id = $1 ORDER BY created_at ASC"

	rows, err := r.db.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*project.Project, error) {
	query := `
		SELECT p.id, p.client_id, p.name, p.slug, p.status, p.tags, p.hero_photo_url,
		       p.photos, p.videos, p.last_update, p.created_at
		FROM projects p
		INNER JOIN clients c ON c.id = p.client_id
		WHERE c.studio_id = $1
		ORDER BY p.created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) error {
	query := "UPDATE projects SET last_update = NOW()"
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
	if input.Status != nil {
		if err := input.Status.Validate(); err != nil {
			return apperrors.Validation(err.Error())
		}
		argCount++
		query += fmt.Sprintf(", status = $%d", argCount)
		args = append(args, *input.Status)
	}
	if input.Tags != nil {
		if len(*input.Tags) == 0 {
			return apperrors.Validation(errNoDeliverables)
		}
		argCount++
		query += fmt.Sprintf(", tags = $%d", argCount)
		args = append(args, *input.Tags)
	}
	if input.HeroPhotoURL != nil {
		argCount++
		query += fmt.Sprintf(", hero_photo_url = $%d", argCount)
		args = append(args, *input.HeroPhotoURL)
	}
	if input.Photos != nil {
		photosJSON, err := json.Marshal(*input.Photos)
		if err != nil {
			return errFailedUpdateProject(err)
		}
		argCount++
		query += fmt.Sprintf(", photos = $%d", argCount)
		args = append(args, photosJSON)
	}
	if input.Videos != nil {
		videosJSON, err := json.Marshal(*input.Videos)
		if err != nil {
			return errFailedUpdateProject(err)
		}
		argCount++
		query += fmt.Sprintf(", videos = $%d", argCount)
		args = append(args, videosJSON)
	}

	query += " WHERE id = $1 RETURNING client_id"

	var clientID uuid.UUID
	if err := r.db.Pool.QueryRow(ctx, query, args...).Scan(&clientID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NotFound(errProjectNotFound)
		}
		return errFailedUpdateProject(err)
	}

	if input.Tags != nil {
		return r.adoptTags(ctx, clientID, *input.Tags)
	}

	return nil
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM projects WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteProject(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

// ReorderProjectPhotos applies a drag operation to the stored photo set.
// Invalid index pairs leave the project untouched.
func (r *ProjectRepository) ReorderProjectPhotos(ctx context.Context, id uuid.UUID, src, dest int) error {
	p, err := r.GetProject(ctx, id)
	if err != nil {
		return err
	}

	reordered := registry.ReorderPhotos(p.Photos, src, dest)
	photosJSON, err := json.Marshal(reordered)
	if err != nil {
		return errFailedUpdateProject(err)
	}

	query := "UPDATE projects SET photos = $2, last_update = NOW() WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id, photosJSON)
	if err != nil {
		return errFailedUpdateProject(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

// SeedPalette installs the preset deliverable tags for a new studio. Reseeding
// is a no-op for labels that already exist.
func (r *ProjectRepository) SeedPalette(ctx context.Context, studioID uuid.UUID) error {
	query := `
		INSERT INTO tags (studio_id, label)
		SELECT $1::uuid, unnest($2::text[])
		ON CONFLICT (studio_id, label) DO NOTHING
	`

	if _, err := r.db.Pool.Exec(ctx, query, studioID, registry.PresetTags); err != nil {
		return errFailedSeedPalette(err)
	}

	return nil
}

// Palette returns the studio's tag palette with usage recomputed from scratch
// against its current projects.
func (r *ProjectRepository) Palette(ctx context.Context, studioID uuid.UUID) ([]registry.TagUsage, error) {
	query := "SELECT label FROM tags WHERE studio_id = $1 ORDER BY created_at ASC, label ASC"

	rows, err := r.db.Pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, errFailedListTags(err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, errFailedListTags(err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListTags(err)
	}

	projects, err := r.ListByStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}

	usage := registry.ComputeTagUsage(projects)
	counts := make(map[string]registry.TagUsage, len(usage))
	for _, u := range usage {
		counts[u.Label] = u
	}

	view := make([]registry.TagUsage, 0, len(labels))
	for _, label := range labels {
		if u, ok := counts[label]; ok {
			view = append(view, u)
			continue
		}
		view = append(view, registry.TagUsage{Label: label})
	}

	return view, nil
}

// RemoveTag deletes a palette entry only when its recomputed usage is zero.
func (r *ProjectRepository) RemoveTag(ctx context.Context, studioID uuid.UUID, label string) error {
	projects, err := r.ListByStudio(ctx, studioID)
	if err != nil {
		return err
	}

	if registry.UsageOf(projects, label) > 0 {
		return apperrors.TagInUse(errTagStillInUse)
	}

	query := "DELETE FROM tags WHERE studio_id = $1 AND label = $2"
	result, err := r.db.Pool.Exec(ctx, query, studioID, label)
	if err != nil {
		return errFailedDeleteTag(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errTagNotFound)
	}

	return nil
}

// adoptTags records custom labels in the palette of the owning studio.
func (r *ProjectRepository) adoptTags(ctx context.Context, clientID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	query := `
		INSERT INTO tags (studio_id, label)
		SELECT c.studio_id, unnest($2::text[])
		FROM clients c
		WHERE c.id = $1
		ON CONFLICT (studio_id, label) DO NOTHING
	`

	if _, err := r.db.Pool.Exec(ctx, query, clientID, tags); err != nil {
		return errFailedAdoptTags(err)
	}

	return nil
}
