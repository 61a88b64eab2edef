package registry

import (
	"context"
	"testing"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClient(t *testing.T, r *Registry, studioID uuid.UUID, name string) *client.Client {
	t.Helper()
	c, err := r.Create(context.Background(), client.CreateClientInput{StudioID: studioID, Name: name})
	require.NoError(t, err)

	return c
}

func seedProject(t *testing.T, r *Registry, clientID uuid.UUID, name string, tags ...string) *project.Project {
	t.Helper()
	p, err := r.CreateProject(context.Background(), project.CreateProjectInput{
		ClientID: clientID,
		Name:     name,
		Tags:     tags,
	})
	require.NoError(t, err)

	return p
}

func TestCreateProject_ZeroDeliverablesBlocked(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")

	_, err := r.CreateProject(context.Background(), project.CreateProjectInput{
		ClientID: c.ID,
		Name:     "Harbor House",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "Please select at least one deliverable")

	// Nothing persisted.
	projects, err := r.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestRemoveTag_LockedWhileInUse(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")
	seedProject(t, r, c.ID, "Harbor House", "Floor Plan")
	seedProject(t, r, c.ID, "Loft 42", "Floor Plan")

	ctx := context.Background()
	err := r.RemoveTag(ctx, studioID, "Floor Plan")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTagInUse)

	// No-op: usage still 2 and the tag still in the palette.
	projects, err := r.ListByStudio(ctx, studioID)
	require.NoError(t, err)
	assert.Equal(t, 2, UsageOf(projects, "Floor Plan"))

	palette, err := r.Palette(ctx, studioID)
	require.NoError(t, err)
	labels := make([]string, 0, len(palette))
	for _, u := range palette {
		labels = append(labels, u.Label)
	}
	assert.Contains(t, labels, "Floor Plan")
}

func TestRemoveTag_ZeroUsageDeletes(t *testing.T) {
	r := New()
	studioID := uuid.New()

	ctx := context.Background()
	require.NoError(t, r.RemoveTag(ctx, studioID, "Animation"))

	palette, err := r.Palette(ctx, studioID)
	require.NoError(t, err)
	for _, u := range palette {
		assert.NotEqual(t, "Animation", u.Label)
	}
}

func TestCustomTagAdoptedIntoPalette(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")
	seedProject(t, r, c.ID, "Harbor House", "Drone Footage")

	palette, err := r.Palette(context.Background(), studioID)
	require.NoError(t, err)

	var found *TagUsage
	for i := range palette {
		if palette[i].Label == "Drone Footage" {
			found = &palette[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 1, found.Count)
	assert.Equal(t, "Harbor House", found.FirstProject)
}

func TestPalette_ScopedPerStudio(t *testing.T) {
	r := New()
	studioA := uuid.New()
	studioB := uuid.New()
	cb := seedClient(t, r, studioB, "Bayside Media")
	seedProject(t, r, cb.ID, "Pier Walkthrough", "Drone Footage")

	ctx := context.Background()

	// B's custom label never shows up in A's palette.
	palette, err := r.Palette(ctx, studioA)
	require.NoError(t, err)
	for _, u := range palette {
		assert.NotEqual(t, "Drone Footage", u.Label)
	}

	// A cannot delete a label it does not have.
	err = r.RemoveTag(ctx, studioA, "Drone Footage")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// B's own copy stays locked by usage.
	err = r.RemoveTag(ctx, studioB, "Drone Footage")
	assert.ErrorIs(t, err, apperrors.ErrTagInUse)

	projects, err := r.ListByStudio(ctx, studioB)
	require.NoError(t, err)
	assert.Equal(t, 1, UsageOf(projects, "Drone Footage"))
}

func TestRemoveTag_DoesNotLeakAcrossStudios(t *testing.T) {
	r := New()
	studioA := uuid.New()
	studioB := uuid.New()

	ctx := context.Background()
	require.NoError(t, r.RemoveTag(ctx, studioA, "Animation"))

	// Deleting a preset for one studio leaves every other palette intact.
	palette, err := r.Palette(ctx, studioB)
	require.NoError(t, err)
	labels := make([]string, 0, len(palette))
	for _, u := range palette {
		labels = append(labels, u.Label)
	}
	assert.Contains(t, labels, "Animation")
}

func TestDeleteClient_RemovesProjects(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")
	p := seedProject(t, r, c.ID, "Harbor House", "Floor Plan")

	ctx := context.Background()
	require.NoError(t, r.Delete(ctx, c.ID))

	_, err := r.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListClients_ProjectCountDenormalized(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")
	seedProject(t, r, c.ID, "Harbor House", "Floor Plan")
	seedProject(t, r, c.ID, "Loft 42", "Animation")

	clients, err := r.ListClients(context.Background(), studioID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, 2, clients[0].ProjectCount)
}

func TestReorderProjectPhotos(t *testing.T) {
	r := New()
	studioID := uuid.New()
	c := seedClient(t, r, studioID, "Acme Interiors")
	p := seedProject(t, r, c.ID, "Harbor House", "Floor Plan")

	ctx := context.Background()
	photos := makePhotos(3)
	require.NoError(t, r.UpdateProject(ctx, p.ID, project.UpdateProjectInput{Photos: &photos}))

	require.NoError(t, r.ReorderProjectPhotos(ctx, p.ID, 0, 2))

	got, err := r.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "shot 1", got.Photos[0].Title)
	assert.Equal(t, "shot 0", got.Photos[2].Title)
}
