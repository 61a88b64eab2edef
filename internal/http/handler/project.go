package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"weshow/internal/auth"
	"weshow/internal/domain/project"
	"weshow/internal/registry"
	"weshow/internal/repository"
	"weshow/internal/resolve"
	apperrors "weshow/pkg/errors"
	"weshow/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProjectHandler struct {
	projectRepo repository.ProjectRepository
	resolver    *resolve.Resolver
}

func NewProjectHandler(projectRepo repository.ProjectRepository, resolver *resolve.Resolver) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo, resolver: resolver}
}

type CreateProjectRequest struct {
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

type UpdateProjectRequest struct {
	Name         *string          `json:"name"`
	Status       *string          `json:"status"`
	Tags         *[]string        `json:"tags"`
	HeroPhotoURL *string          `json:"heroPhotoUrl"`
	Photos       *[]project.Photo `json:"photos"`
	Videos       *[]project.Video `json:"videos"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ReorderPhotosRequest struct {
	Source      *int `json:"source"`
	Destination *int `json:"destination"`
}

type ProjectResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Status       string          `json:"status"`
	Tags         []string        `json:"tags"`
	HeroPhotoURL string          `json:"heroPhotoUrl"`
	Photos       []project.Photo `json:"photos"`
	Videos       []project.Video `json:"videos"`
	LastUpdate   string          `json:"lastUpdate"`
	CreatedAt    string          `json:"createdAt"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

type TagResponse struct {
	Label        string `json:"label"`
	Count        int    `json:"count"`
	FirstProject string `json:"firstProject,omitempty"`
	Locked       bool   `json:"locked"`
}

func projectResponse(p *project.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:           p.ID.String(),
		ClientID:     p.ClientID.String(),
		Name:         p.Name,
		Slug:         p.Slug,
		Status:       string(p.Status),
		Tags:         p.Tags,
		HeroPhotoURL: p.HeroPhotoURL,
		Photos:       p.Photos,
		Videos:       p.Videos,
		LastUpdate:   p.LastUpdate.UTC().Format("2006-01-02T15:04:05Z07:00"),
		CreatedAt:    p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Photos == nil {
		resp.Photos = []project.Photo{}
	}
	if resp.Videos == nil {
		resp.Videos = []project.Video{}
	}

	return resp
}

// resolveScope walks the :client and, when present, :project path segments.
// Either segment failing to resolve yields the listing path the UI should
// fall back to instead of rendering a 404 page.
func (h *ProjectHandler) resolveScope(c echo.Context, studioID uuid.UUID, withProject bool) (clientID, projectID uuid.UUID, fallback string, err error) {
	ctx := c.Request().Context()

	clientRes, err := h.resolver.ResolveClient(ctx, studioID, c.Param("client"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}
	if !clientRes.Found {
		return uuid.Nil, uuid.Nil, clientListingPath, nil
	}

	if !withProject {
		return clientRes.ID, uuid.Nil, "", nil
	}

	projectRes, err := h.resolver.ResolveProject(ctx, clientRes.ID, c.Param("project"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}
	if !projectRes.Found {
		return uuid.Nil, uuid.Nil, fmt.Sprintf(projectListingFmt, clientRes.CanonicalSlug), nil
	}

	return clientRes.ID, projectRes.ID, "", nil
}

func (h *ProjectHandler) List(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	clientID, _, fallback, err := h.resolveScope(c, studioID, false)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgClientNotFound, fallback)
	}

	projects, err := h.projectRepo.ListProjects(c.Request().Context(), clientID)
	if err != nil {
		c.Logger().Errorf("Failed to list projects for client %s: %v", clientID, err)
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	resp := ProjectListResponse{Projects: make([]ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectResponse(p))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	clientID, _, fallback, err := h.resolveScope(c, studioID, false)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgClientNotFound, fallback)
	}

	var req CreateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.ProjectName(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Deliverables(req.Tags); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	for _, tag := range req.Tags {
		if err := validator.TagLabel(tag); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	p, err := h.projectRepo.CreateProject(c.Request().Context(), project.CreateProjectInput{
		ClientID: clientID,
		Name:     req.Name,
		Status:   project.Status(req.Status),
		Tags:     req.Tags,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return handleAppError(c, err, http.StatusBadRequest)
		}
		c.Logger().Errorf("Failed to create project for client %s: %v", clientID, err)
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.JSON(http.StatusCreated, projectResponse(p))
}

func (h *ProjectHandler) Get(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	_, projectID, fallback, err := h.resolveScope(c, studioID, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgProjectNotFound, fallback)
	}

	p, err := h.projectRepo.GetProject(c.Request().Context(), projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgProjectNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.JSON(http.StatusOK, projectResponse(p))
}

func (h *ProjectHandler) Update(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	_, projectID, fallback, err := h.resolveScope(c, studioID, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgProjectNotFound, fallback)
	}

	var req UpdateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.ProjectName(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}
	if req.Tags != nil {
		if err := validator.Deliverables(*req.Tags); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		for _, tag := range *req.Tags {
			if err := validator.TagLabel(tag); err != nil {
				return respondError(c, http.StatusBadRequest, err.Error())
			}
		}
	}

	input := project.UpdateProjectInput{
		Name:         req.Name,
		Tags:         req.Tags,
		HeroPhotoURL: req.HeroPhotoURL,
		Photos:       req.Photos,
		Videos:       req.Videos,
	}
	if req.Status != nil {
		status := project.Status(*req.Status)
		input.Status = &status
	}

	ctx := c.Request().Context()
	if err := h.projectRepo.UpdateProject(ctx, projectID, input); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return respondNotFoundWithParent(c, msgProjectNotFound, clientListingPath)
		case errors.Is(err, apperrors.ErrValidation):
			return handleAppError(c, err, http.StatusBadRequest)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	p, err := h.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.JSON(http.StatusOK, projectResponse(p))
}

func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	_, projectID, fallback, err := h.resolveScope(c, studioID, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgProjectNotFound, fallback)
	}

	var req UpdateStatusRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	status := project.Status(req.Status)
	if err := status.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.projectRepo.UpdateProject(ctx, projectID, project.UpdateProjectInput{Status: &status}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgProjectNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	p, err := h.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.JSON(http.StatusOK, projectResponse(p))
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	_, projectID, fallback, err := h.resolveScope(c, studioID, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgProjectNotFound, fallback)
	}

	if err := h.projectRepo.DeleteProject(c.Request().Context(), projectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgProjectNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderPhotos applies one drag step. Out-of-range or equal indices are a
// silent no-op server-side, mirroring the drop behavior in the editor.
func (h *ProjectHandler) ReorderPhotos(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	_, projectID, fallback, err := h.resolveScope(c, studioID, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}
	if fallback != "" {
		return respondNotFoundWithParent(c, msgProjectNotFound, fallback)
	}

	var req ReorderPhotosRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if req.Source == nil || req.Destination == nil {
		return respondError(c, http.StatusBadRequest, msgInvalidIndexPair)
	}

	ctx := c.Request().Context()
	if err := h.projectRepo.ReorderProjectPhotos(ctx, projectID, *req.Source, *req.Destination); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgProjectNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	p, err := h.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.JSON(http.StatusOK, projectResponse(p))
}

// ListTags returns the palette with usage recomputed from the studio's
// projects on every call.
func (h *ProjectHandler) ListTags(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	palette, err := h.projectRepo.Palette(c.Request().Context(), studioID)
	if err != nil {
		c.Logger().Errorf("Failed to load tag palette for studio %s: %v", studioID, err)
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	resp := TagListResponse{Tags: make([]TagResponse, 0, len(palette))}
	for _, u := range palette {
		resp.Tags = append(resp.Tags, tagResponse(u))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) DeleteTag(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	label := c.Param("label")
	if err := validator.TagLabel(label); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.projectRepo.RemoveTag(c.Request().Context(), studioID, label); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return handleAppError(c, err, http.StatusNotFound)
		case errors.Is(err, apperrors.ErrTagInUse):
			return handleAppError(c, err, http.StatusConflict)
		}
		return respondError(c, http.StatusInternalServerError, msgProjectNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}

func tagResponse(u registry.TagUsage) TagResponse {
	return TagResponse{
		Label:        u.Label,
		Count:        u.Count,
		FirstProject: u.FirstProject,
		Locked:       u.Count > 0,
	}
}
