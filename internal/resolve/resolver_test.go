package resolve

import (
	"context"
	"errors"
	"testing"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientLister struct {
	clients []*client.Client
	err     error
}

func (f *fakeClientLister) ListClients(ctx context.Context, studioID uuid.UUID) ([]*client.Client, error) {
	return f.clients, f.err
}

type fakeProjectLister struct {
	projects []*project.Project
	err      error
}

func (f *fakeProjectLister) ListProjects(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error) {
	return f.projects, f.err
}

func TestResolveClient_ByID(t *testing.T) {
	c := &client.Client{ID: uuid.New(), Name: "Acme Interiors", Slug: "acme-interiors"}
	r := NewResolver(&fakeClientLister{clients: []*client.Client{c}}, &fakeProjectLister{})

	res, err := r.ResolveClient(context.Background(), uuid.New(), c.ID.String())
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, c.ID, res.ID)
	assert.Equal(t, ByID, res.Strategy)
}

func TestResolveClient_BySlug(t *testing.T) {
	c := &client.Client{ID: uuid.New(), Name: "Acme Interiors", Slug: "acme-interiors"}
	r := NewResolver(&fakeClientLister{clients: []*client.Client{c}}, &fakeProjectLister{})

	res, err := r.ResolveClient(context.Background(), uuid.New(), "acme-interiors")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, c.ID, res.ID)
	assert.Equal(t, BySlug, res.Strategy)
}

func TestResolveClient_ByNameFallback(t *testing.T) {
	// No stored slug: resolution falls through to the normalized-name compare.
	c := &client.Client{ID: uuid.New(), Name: "Acme Interiors"}
	r := NewResolver(&fakeClientLister{clients: []*client.Client{c}}, &fakeProjectLister{})

	res, err := r.ResolveClient(context.Background(), uuid.New(), "Acme-Interiors")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, ByName, res.Strategy)
	assert.Equal(t, "acme-interiors", res.CanonicalSlug)
}

func TestResolveClient_Idempotent(t *testing.T) {
	// Resolving the raw segment and its canonicalized slug lands on the same id.
	c := &client.Client{ID: uuid.New(), Name: "Loft 42", Slug: "loft-42"}
	r := NewResolver(&fakeClientLister{clients: []*client.Client{c}}, &fakeProjectLister{})

	first, err := r.ResolveClient(context.Background(), uuid.New(), "Loft-42")
	require.NoError(t, err)
	require.True(t, first.Found)

	second, err := r.ResolveClient(context.Background(), uuid.New(), first.CanonicalSlug)
	require.NoError(t, err)
	require.True(t, second.Found)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveClient_NotFound(t *testing.T) {
	r := NewResolver(&fakeClientLister{}, &fakeProjectLister{})

	res, err := r.ResolveClient(context.Background(), uuid.New(), "nobody-here")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestResolveClient_ListerError(t *testing.T) {
	r := NewResolver(&fakeClientLister{err: errors.New("db down")}, &fakeProjectLister{})

	res, err := r.ResolveClient(context.Background(), uuid.New(), "acme")
	assert.Error(t, err)
	assert.False(t, res.Found)
}

func TestResolveProject_StrategyOrder(t *testing.T) {
	// A project whose name collides with another's slug: stored slug wins
	// before the name fallback is consulted.
	first := &project.Project{ID: uuid.New(), Name: "Harbor House", Slug: "harbor-house"}
	second := &project.Project{ID: uuid.New(), Name: "harbor house"}
	r := NewResolver(&fakeClientLister{}, &fakeProjectLister{projects: []*project.Project{second, first}})

	res, err := r.ResolveProject(context.Background(), uuid.New(), "harbor-house")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, first.ID, res.ID)
	assert.Equal(t, BySlug, res.Strategy)
}
