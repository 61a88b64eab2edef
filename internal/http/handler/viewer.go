package handler

import (
	"errors"
	"net/http"
	"strings"

	"weshow/internal/domain/studio"
	"weshow/internal/repository"
	"weshow/internal/resolve"
	"weshow/internal/slug"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ViewerHandler serves the client-facing gallery: a public, read-only view
// addressed by human-friendly slugs. Every lookup failure collapses to the
// same 404 so the URL space leaks nothing about which tenants exist.
type ViewerHandler struct {
	studioRepo  repository.StudioRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	resolver    *resolve.Resolver
}

func NewViewerHandler(studioRepo repository.StudioRepository, clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, resolver *resolve.Resolver) *ViewerHandler {
	return &ViewerHandler{
		studioRepo:  studioRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		resolver:    resolver,
	}
}

type GalleryResponse struct {
	Studio  GalleryStudio   `json:"studio"`
	Client  GalleryClient   `json:"client"`
	Project ProjectResponse `json:"project"`
}

type GalleryStudio struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Website string `json:"website"`
}

type GalleryClient struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *ViewerHandler) ViewGallery(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.resolveStudio(c, c.Param("studio"))
	if err != nil {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}
	// An inactive studio's galleries go dark along with its dashboard.
	if !s.Active {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}

	clientRes, err := h.resolver.ResolveClient(ctx, s.ID, c.Param("client"))
	if err != nil || !clientRes.Found {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}

	projectRes, err := h.resolver.ResolveProject(ctx, clientRes.ID, c.Param("project"))
	if err != nil || !projectRes.Found {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}

	cl, err := h.clientRepo.GetByID(ctx, clientRes.ID)
	if err != nil {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}

	p, err := h.projectRepo.GetProject(ctx, projectRes.ID)
	if err != nil {
		return respondError(c, http.StatusNotFound, galleryNotFoundMsg)
	}

	return c.JSON(http.StatusOK, GalleryResponse{
		Studio: GalleryStudio{
			Name:    s.Name,
			LogoURL: s.LogoURL,
			Website: s.Website,
		},
		Client: GalleryClient{
			Name: cl.Name,
			Slug: cl.Slug,
		},
		Project: projectResponse(p),
	})
}

// resolveStudio applies the same id → slug → normalized-name chain the
// resolver uses for clients and projects.
func (h *ViewerHandler) resolveStudio(c echo.Context, segment string) (*studio.Studio, error) {
	ctx := c.Request().Context()

	if id, err := uuid.Parse(segment); err == nil {
		if s, err := h.studioRepo.GetByID(ctx, id); err == nil {
			return s, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	studios, err := h.studioRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range studios {
		if slug.Make(s.Name) == segment {
			return s, nil
		}
	}

	normalized := slug.Denormalize(segment)
	for _, s := range studios {
		if strings.EqualFold(s.Name, normalized) {
			return s, nil
		}
	}

	return nil, apperrors.NotFound(galleryNotFoundMsg)
}
