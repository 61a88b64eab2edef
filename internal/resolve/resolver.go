package resolve

import (
	"context"
	"strings"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	"weshow/internal/slug"

	"github.com/google/uuid"
)

// Strategy records how a lookup matched so callers can decide whether to
// canonicalize the URL they were called with.
type Strategy string

const (
	ByID   Strategy = "id"
	BySlug Strategy = "slug"
	ByName Strategy = "name"
)

// Resolution is the outcome of a slug lookup. Exactly one of Found/NotFound
// holds; callers must treat NotFound as a redirect-to-parent condition, never
// an exception.
type Resolution struct {
	Found         bool
	ID            uuid.UUID
	Strategy      Strategy
	CanonicalSlug string
}

func notFound() Resolution {
	return Resolution{}
}

func found(id uuid.UUID, strategy Strategy, name string) Resolution {
	return Resolution{
		Found:         true,
		ID:            id,
		Strategy:      strategy,
		CanonicalSlug: slug.Make(name),
	}
}

// ClientLister is the read surface the resolver needs.
type ClientLister interface {
	ListClients(ctx context.Context, studioID uuid.UUID) ([]*client.Client, error)
}

type ProjectLister interface {
	ListProjects(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error)
}

type Resolver struct {
	clients  ClientLister
	projects ProjectLister
}

func NewResolver(clients ClientLister, projects ProjectLister) *Resolver {
	return &Resolver{clients: clients, projects: projects}
}

// ResolveClient tries, in order: exact id match, stored slug match, then a
// normalized-name comparison. Two same-named clients resolve to whichever
// comes first; that collision is preserved, not fixed.
func (r *Resolver) ResolveClient(ctx context.Context, studioID uuid.UUID, segment string) (Resolution, error) {
	clients, err := r.clients.ListClients(ctx, studioID)
	if err != nil {
		return notFound(), err
	}

	if id, err := uuid.Parse(segment); err == nil {
		for _, c := range clients {
			if c.ID == id {
				return found(c.ID, ByID, c.Name), nil
			}
		}
	}

	for _, c := range clients {
		if c.Slug != "" && c.Slug == segment {
			return found(c.ID, BySlug, c.Name), nil
		}
	}

	normalized := slug.Denormalize(segment)
	for _, c := range clients {
		if strings.EqualFold(c.Name, normalized) {
			return found(c.ID, ByName, c.Name), nil
		}
	}

	return notFound(), nil
}

// ResolveProject applies the same strategy chain within one client's projects.
func (r *Resolver) ResolveProject(ctx context.Context, clientID uuid.UUID, segment string) (Resolution, error) {
	projects, err := r.projects.ListProjects(ctx, clientID)
	if err != nil {
		return notFound(), err
	}

	if id, err := uuid.Parse(segment); err == nil {
		for _, p := range projects {
			if p.ID == id {
				return found(p.ID, ByID, p.Name), nil
			}
		}
	}

	for _, p := range projects {
		if p.Slug != "" && p.Slug == segment {
			return found(p.ID, BySlug, p.Name), nil
		}
	}

	normalized := slug.Denormalize(segment)
	for _, p := range projects {
		if strings.EqualFold(p.Name, normalized) {
			return found(p.ID, ByName, p.Name), nil
		}
	}

	return notFound(), nil
}
