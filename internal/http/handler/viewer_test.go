package handler

import (
	"context"
	"net/http"
	"testing"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	"weshow/internal/domain/studio"
	"weshow/internal/registry"
	"weshow/internal/resolve"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewerFixture struct {
	studios *fakeStudioRepo
	store   *registry.Registry
	handler *ViewerHandler
	studio  *studio.Studio
}

func newViewerFixture(t *testing.T) *viewerFixture {
	t.Helper()

	studios := newFakeStudioRepo()
	store := registry.New()
	resolver := resolve.NewResolver(store, store)

	s, err := studios.Create(context.Background(), studio.CreateStudioInput{
		Email:        "gallery@northlight.studio",
		PasswordHash: "$2a$12$irrelevant",
		Name:         "Northlight Studio",
	})
	require.NoError(t, err)

	cl, err := store.Create(context.Background(), client.CreateClientInput{
		StudioID: s.ID,
		Name:     "Harbor Development Group",
	})
	require.NoError(t, err)

	_, err = store.CreateProject(context.Background(), project.CreateProjectInput{
		ClientID: cl.ID,
		Name:     "Beach House Render",
		Tags:     []string{"Exterior Rendering"},
	})
	require.NoError(t, err)

	return &viewerFixture{
		studios: studios,
		store:   store,
		handler: NewViewerHandler(studios, store, store, resolver),
		studio:  s,
	}
}

func viewGallery(t *testing.T, f *viewerFixture, studioSeg, clientSeg, projectSeg string) (int, string) {
	t.Helper()

	e := echo.New()
	c, rec := newJSONContext(t, e, http.MethodGet, "/api/view/x/x/x", "")
	c.SetParamNames("studio", "client", "project")
	c.SetParamValues(studioSeg, clientSeg, projectSeg)

	require.NoError(t, f.handler.ViewGallery(c))
	return rec.Code, rec.Body.String()
}

func TestViewGalleryResolvesSlugChain(t *testing.T) {
	f := newViewerFixture(t)

	code, body := viewGallery(t, f, "northlight-studio", "harbor-development-group", "beach-house-render")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Northlight Studio")
	assert.Contains(t, body, "Harbor Development Group")
	assert.Contains(t, body, "Beach House Render")
}

func TestViewGalleryResolvesByID(t *testing.T) {
	f := newViewerFixture(t)

	code, _ := viewGallery(t, f, f.studio.ID.String(), "harbor-development-group", "beach-house-render")
	assert.Equal(t, http.StatusOK, code)
}

func TestViewGalleryUnknownSegments(t *testing.T) {
	f := newViewerFixture(t)

	tests := []struct {
		name                       string
		studioSeg, clientSeg, proj string
	}{
		{"unknown studio", "no-such-studio", "harbor-development-group", "beach-house-render"},
		{"unknown client", "northlight-studio", "no-such-client", "beach-house-render"},
		{"unknown project", "northlight-studio", "harbor-development-group", "no-such-project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := viewGallery(t, f, tt.studioSeg, tt.clientSeg, tt.proj)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Contains(t, body, galleryNotFoundMsg)
		})
	}
}

func TestViewGalleryHiddenForInactiveStudio(t *testing.T) {
	f := newViewerFixture(t)
	require.NoError(t, f.studios.SetActive(context.Background(), f.studio.ID, false))

	code, _ := viewGallery(t, f, "northlight-studio", "harbor-development-group", "beach-house-render")
	assert.Equal(t, http.StatusNotFound, code)
}
