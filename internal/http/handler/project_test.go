package handler

import (
	"context"
	"net/http"
	"testing"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	"weshow/internal/registry"
	"weshow/internal/resolve"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	store    *registry.Registry
	handler  *ProjectHandler
	studioID uuid.UUID
	client   *client.Client
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()

	store := registry.New()
	resolver := resolve.NewResolver(store, store)
	studioID := uuid.New()

	cl, err := store.Create(context.Background(), client.CreateClientInput{
		StudioID: studioID,
		Name:     "Harbor Development Group",
	})
	require.NoError(t, err)

	return &projectFixture{
		store:    store,
		handler:  NewProjectHandler(store, resolver),
		studioID: studioID,
		client:   cl,
	}
}

func (f *projectFixture) seedProject(t *testing.T, name string, tags []string) *project.Project {
	t.Helper()

	p, err := f.store.CreateProject(context.Background(), project.CreateProjectInput{
		ClientID: f.client.ID,
		Name:     name,
		Tags:     tags,
	})
	require.NoError(t, err)

	return p
}

func TestCreateProjectRequiresDeliverable(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/studio/clients/harbor-development-group/projects",
		`{"name":"Tower Lobby","tags":[]}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client")
	c.SetParamValues("harbor-development-group")

	require.NoError(t, f.handler.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select at least one deliverable")

	// The rejection must leave nothing behind.
	projects, err := f.store.ListProjects(context.Background(), f.client.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCreateProjectAndResolveBySlug(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/studio/clients/harbor-development-group/projects",
		`{"name":"Beach House Render","tags":["Exterior Rendering"]}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client")
	c.SetParamValues("harbor-development-group")

	require.NoError(t, f.handler.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ProjectResponse
	decodeBody(t, rec, &created)
	assert.Equal(t, "beach-house-render", created.Slug)
	assert.Equal(t, "draft", created.Status)

	c, rec = newJSONContext(t, e, http.MethodGet, "/api/studio/clients/harbor-development-group/projects/beach-house-render", "")
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "beach-house-render")

	require.NoError(t, f.handler.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched ProjectResponse
	decodeBody(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestProjectResolvesByIDAndByName(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	p := f.seedProject(t, "Rooftop Garden", []string{"Virtual Staging"})

	for _, segment := range []string{p.ID.String(), "rooftop-garden", "Rooftop Garden"} {
		c, rec := newJSONContext(t, e, http.MethodGet, "/api/studio/clients/x/projects/x", "")
		authenticate(c, f.studioID)
		c.SetParamNames("client", "project")
		c.SetParamValues("harbor-development-group", segment)

		require.NoError(t, f.handler.Get(c))
		assert.Equal(t, http.StatusOK, rec.Code, "segment %q should resolve", segment)
	}
}

func TestUnknownProjectRedirectsToClientListing(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/studio/clients/harbor-development-group/projects/no-such-project", "")
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "no-such-project")

	require.NoError(t, f.handler.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "/studio/clients/harbor-development-group", body[jsonKeyRedirect])
}

func TestUnknownClientRedirectsToClients(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/studio/clients/no-such-client/projects", "")
	authenticate(c, f.studioID)
	c.SetParamNames("client")
	c.SetParamValues("no-such-client")

	require.NoError(t, f.handler.List(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, clientListingPath, body[jsonKeyRedirect])
}

func TestReorderPhotosThroughAPI(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	p := f.seedProject(t, "Penthouse Suite", []string{"Interior Rendering"})

	photos := []project.Photo{
		{ID: "photo-0", Title: "Living Room", URL: "https://cdn.example.com/a.jpg", Order: 0},
		{ID: "photo-1", Title: "Kitchen", URL: "https://cdn.example.com/b.jpg", Order: 1},
		{ID: "photo-2", Title: "Bedroom", URL: "https://cdn.example.com/c.jpg", Order: 2},
	}
	require.NoError(t, f.store.UpdateProject(context.Background(), p.ID, project.UpdateProjectInput{Photos: &photos}))

	c, rec := newJSONContext(t, e, http.MethodPut, "/api/studio/clients/x/projects/x/photos/reorder",
		`{"source":0,"destination":2}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "penthouse-suite")

	require.NoError(t, f.handler.ReorderPhotos(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProjectResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Photos, 3)

	// The moved photo lands at the destination and every key is rebuilt
	// from the new position.
	assert.Equal(t, "https://cdn.example.com/b.jpg", resp.Photos[0].URL)
	assert.Equal(t, "https://cdn.example.com/c.jpg", resp.Photos[1].URL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", resp.Photos[2].URL)
	for i, photo := range resp.Photos {
		assert.Equal(t, project.PhotoID(i), photo.ID)
		assert.Equal(t, i, photo.Order)
	}
}

func TestReorderPhotosRequiresBothIndices(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	f.seedProject(t, "Penthouse Suite", []string{"Interior Rendering"})

	c, rec := newJSONContext(t, e, http.MethodPut, "/api/studio/clients/x/projects/x/photos/reorder",
		`{"source":1}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "penthouse-suite")

	require.NoError(t, f.handler.ReorderPhotos(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTagInUseConflicts(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	f.seedProject(t, "Marina Towers", []string{"Floor Plan"})

	c, rec := newJSONContext(t, e, http.MethodDelete, "/api/studio/tags/Floor%20Plan", "")
	authenticate(c, f.studioID)
	c.SetParamNames("label")
	c.SetParamValues("Floor Plan")

	require.NoError(t, f.handler.DeleteTag(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The palette keeps the locked tag.
	palette, err := f.store.Palette(context.Background(), f.studioID)
	require.NoError(t, err)
	labels := make([]string, 0, len(palette))
	for _, u := range palette {
		labels = append(labels, u.Label)
	}
	assert.Contains(t, labels, "Floor Plan")
}

func TestDeleteUnusedTagSucceeds(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	f.seedProject(t, "Marina Towers", []string{"Floor Plan"})

	c, rec := newJSONContext(t, e, http.MethodDelete, "/api/studio/tags/Animation", "")
	authenticate(c, f.studioID)
	c.SetParamNames("label")
	c.SetParamValues("Animation")

	require.NoError(t, f.handler.DeleteTag(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	palette, err := f.store.Palette(context.Background(), f.studioID)
	require.NoError(t, err)
	for _, u := range palette {
		assert.NotEqual(t, "Animation", u.Label)
	}
}

func TestListTagsMarksUsageAndLock(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	f.seedProject(t, "Marina Towers", []string{"Floor Plan", "Skyline Timelapse"})
	f.seedProject(t, "Marina Phase Two", []string{"Floor Plan"})

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/studio/tags", "")
	authenticate(c, f.studioID)

	require.NoError(t, f.handler.ListTags(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TagListResponse
	decodeBody(t, rec, &resp)

	byLabel := make(map[string]TagResponse, len(resp.Tags))
	for _, tag := range resp.Tags {
		byLabel[tag.Label] = tag
	}

	floorPlan, ok := byLabel["Floor Plan"]
	require.True(t, ok)
	assert.Equal(t, 2, floorPlan.Count)
	assert.True(t, floorPlan.Locked)
	assert.Equal(t, "Marina Towers", floorPlan.FirstProject)

	// Custom labels join the palette on first use.
	custom, ok := byLabel["Skyline Timelapse"]
	require.True(t, ok)
	assert.Equal(t, 1, custom.Count)

	animation, ok := byLabel["Animation"]
	require.True(t, ok)
	assert.Equal(t, 0, animation.Count)
	assert.False(t, animation.Locked)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	e := echo.New()
	f := newProjectFixture(t)
	f.seedProject(t, "Marina Towers", []string{"Floor Plan"})

	c, rec := newJSONContext(t, e, http.MethodPatch, "/api/studio/clients/x/projects/x/status",
		`{"status":"finished"}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "marina-towers")

	require.NoError(t, f.handler.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(t, e, http.MethodPatch, "/api/studio/clients/x/projects/x/status",
		`{"status":"delivered"}`)
	authenticate(c, f.studioID)
	c.SetParamNames("client", "project")
	c.SetParamValues("harbor-development-group", "marina-towers")

	require.NoError(t, f.handler.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProjectResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "delivered", resp.Status)
}
