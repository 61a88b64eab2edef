package handler

import (
	"errors"
	"net/http"
	"strings"

	"weshow/internal/auth"
	"weshow/internal/domain/client"
	"weshow/internal/repository"
	"weshow/internal/resolve"
	apperrors "weshow/pkg/errors"
	"weshow/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ClientHandler struct {
	clientRepo repository.ClientRepository
	resolver   *resolve.Resolver
}

func NewClientHandler(clientRepo repository.ClientRepository, resolver *resolve.Resolver) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, resolver: resolver}
}

type CreateClientRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type UpdateClientRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

type ClientResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProjectCount int    `json:"projectCount"`
	CreatedAt    string `json:"createdAt"`
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

func clientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Slug:         c.Slug,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Address:      c.Address,
		ProjectCount: c.ProjectCount,
		CreatedAt:    c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// resolveClient maps the :client path segment (id, slug, or denormalized name)
// to a concrete client ID scoped to the authenticated studio.
func (h *ClientHandler) resolveClient(c echo.Context, studioID uuid.UUID) (resolve.Resolution, error) {
	return h.resolver.ResolveClient(c.Request().Context(), studioID, c.Param("client"))
}

func (h *ClientHandler) List(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	clients, err := h.clientRepo.ListClients(c.Request().Context(), studioID)
	if err != nil {
		c.Logger().Errorf("Failed to list clients for studio %s: %v", studioID, err)
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	resp := ClientListResponse{Clients: make([]ClientResponse, 0, len(clients))}
	for _, cl := range clients {
		resp.Clients = append(resp.Clients, clientResponse(cl))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) Create(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.ClientName(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.ContactEmail != "" {
		if err := validator.Email(strings.ToLower(strings.TrimSpace(req.ContactEmail))); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	cl, err := h.clientRepo.Create(c.Request().Context(), client.CreateClientInput{
		StudioID:     studioID,
		Name:         req.Name,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
	})
	if err != nil {
		c.Logger().Errorf("Failed to create client for studio %s: %v", studioID, err)
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	return c.JSON(http.StatusCreated, clientResponse(cl))
}

func (h *ClientHandler) Get(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	res, err := h.resolveClient(c, studioID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}
	if !res.Found {
		return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
	}

	cl, err := h.clientRepo.GetByID(c.Request().Context(), res.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	return c.JSON(http.StatusOK, clientResponse(cl))
}

func (h *ClientHandler) Update(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	res, err := h.resolveClient(c, studioID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}
	if !res.Found {
		return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
	}

	var req UpdateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.ClientName(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	ctx := c.Request().Context()
	err = h.clientRepo.Update(ctx, res.ID, client.UpdateClientInput{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	cl, err := h.clientRepo.GetByID(ctx, res.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	return c.JSON(http.StatusOK, clientResponse(cl))
}

func (h *ClientHandler) Delete(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	res, err := h.resolveClient(c, studioID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}
	if !res.Found {
		return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
	}

	if err := h.clientRepo.Delete(c.Request().Context(), res.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondNotFoundWithParent(c, msgClientNotFound, clientListingPath)
		}
		return respondError(c, http.StatusInternalServerError, msgClientNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}
