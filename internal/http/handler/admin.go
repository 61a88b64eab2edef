package handler

import (
	"errors"
	"net/http"
	"strings"

	"weshow/internal/auth"
	"weshow/internal/repository"
	apperrors "weshow/pkg/errors"
	"weshow/pkg/password"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminRepo     repository.MasterAdminRepository
	studioRepo    repository.StudioRepository
	tokens        *auth.TokenService
	secureCookies bool
}

func NewAdminHandler(adminRepo repository.MasterAdminRepository, studioRepo repository.StudioRepository, tokens *auth.TokenService, secureCookies bool) *AdminHandler {
	return &AdminHandler{
		adminRepo:     adminRepo,
		studioRepo:    studioRepo,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type StudioListResponse struct {
	Studios []StudioResponse `json:"studios"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req AdminLoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	admin, err := h.adminRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		password.Verify(req.Password, dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, admin.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.tokens.GenerateAdminToken(admin.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	c.SetCookie(auth.NewAdminCookie(token, h.tokens.AdminTokenTTL(), h.secureCookies))

	return c.JSON(http.StatusOK, AdminLoginResponse{Token: token})
}

func (h *AdminHandler) ListStudios(c echo.Context) error {
	studios, err := h.studioRepo.List(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgStudioNotFound)
	}

	resp := StudioListResponse{Studios: make([]StudioResponse, 0, len(studios))}
	for _, s := range studios {
		resp.Studios = append(resp.Studios, studioResponse(s))
	}

	return c.JSON(http.StatusOK, resp)
}

// SetStudioActive flips the tenant gate. Deactivation takes effect at the
// session gateway on the studio's next request, not on a future login.
func (h *AdminHandler) SetStudioActive(c echo.Context) error {
	studioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgStudioNotFound)
	}

	var req SetActiveRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()
	if err := h.studioRepo.SetActive(ctx, studioID, req.Active); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgStudioNotFound)
		}
		return respondError(c, http.StatusInternalServerError, msgStudioNotFound)
	}

	s, err := h.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgStudioNotFound)
	}

	return c.JSON(http.StatusOK, studioResponse(s))
}

func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearedCookie(auth.AdminCookieName, h.secureCookies))
	return respondMessage(c, http.StatusOK, msgLoggedOut)
}
