package repository

import (
	"context"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	"weshow/internal/domain/studio"
	"weshow/internal/registry"

	"github.com/google/uuid"
)

// StudioRepository persists tenant principals.
type StudioRepository interface {
	Create(ctx context.Context, input studio.CreateStudioInput) (*studio.Studio, error)
	GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error)
	GetByEmail(ctx context.Context, email string) (*studio.Studio, error)
	List(ctx context.Context) ([]*studio.Studio, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Update(ctx context.Context, id uuid.UUID, input studio.UpdateStudioInput) error
}

// MasterAdminRepository persists platform operator principals.
type MasterAdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*studio.MasterAdmin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*studio.MasterAdmin, error)
}

// ClientRepository persists a studio's customers.
type ClientRepository interface {
	Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	ListClients(ctx context.Context, studioID uuid.UUID) ([]*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository persists projects under a client, plus the deliverable-tag
// palette whose usage counts derive from those projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error)
	ListProjects(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*project.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ReorderProjectPhotos(ctx context.Context, id uuid.UUID, src, dest int) error

	SeedPalette(ctx context.Context, studioID uuid.UUID) error
	Palette(ctx context.Context, studioID uuid.UUID) ([]registry.TagUsage, error)
	RemoveTag(ctx context.Context, studioID uuid.UUID, label string) error
}
