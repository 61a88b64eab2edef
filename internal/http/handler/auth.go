package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"weshow/internal/auth"
	"weshow/internal/domain/studio"
	"weshow/internal/repository"
	apperrors "weshow/pkg/errors"
	"weshow/pkg/password"
	"weshow/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// WelcomeMailer sends the post-registration email. Delivery is best-effort;
// registration never fails on a mail error.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email, studioName string) error
}

type AuthHandler struct {
	studioRepo    repository.StudioRepository
	projectRepo   repository.ProjectRepository
	tokens        *auth.TokenService
	mail          WelcomeMailer
	secureCookies bool
}

func NewAuthHandler(studioRepo repository.StudioRepository, projectRepo repository.ProjectRepository, tokens *auth.TokenService, mail WelcomeMailer, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		studioRepo:    studioRepo,
		projectRepo:   projectRepo,
		tokens:        tokens,
		mail:          mail,
		secureCookies: secureCookies,
	}
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CheckEmailResponse struct {
	Available bool `json:"available"`
}

type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	StudioName string `json:"studioName"`
	Phone      string `json:"phone"`
	Website    string `json:"website"`
}

type StudioResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	LogoURL   string `json:"logoUrl"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

type RegisterResponse struct {
	Studio StudioResponse `json:"studio"`
	Token  string         `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	LogoURL *string `json:"logoUrl"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
}

func studioResponse(s *studio.Studio) StudioResponse {
	return StudioResponse{
		ID:        s.ID.String(),
		Email:     s.Email,
		Name:      s.Name,
		LogoURL:   s.LogoURL,
		Phone:     s.Phone,
		Website:   s.Website,
		Active:    s.Active,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CheckEmail backs the first registration step: the wizard asks whether the
// address is taken before collecting the rest of the form.
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	var req CheckEmailRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	_, err := h.studioRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.JSON(http.StatusOK, CheckEmailResponse{Available: true})
		}
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	return c.JSON(http.StatusOK, CheckEmailResponse{Available: false})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.StudioName = strings.TrimSpace(req.StudioName)

	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.StudioName(req.StudioName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	ctx := c.Request().Context()
	s, err := h.studioRepo.Create(ctx, studio.CreateStudioInput{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.StudioName,
		Phone:        strings.TrimSpace(req.Phone),
		Website:      strings.TrimSpace(req.Website),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	if err := h.projectRepo.SeedPalette(ctx, s.ID); err != nil {
		c.Logger().Errorf("Failed to seed tag palette for studio %s: %v", s.ID, err)
	}

	token, err := h.tokens.GenerateStudioToken(s.ID, s.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	c.SetCookie(auth.NewStudioCookie(token, h.tokens.StudioTokenTTL(), h.secureCookies))

	if h.mail != nil {
		// Context is detached on purpose: the send outlives this request.
		logger := c.Logger()
		go func(email, name string) {
			if err := h.mail.SendWelcome(context.Background(), email, name); err != nil {
				logger.Warnf("Failed to send welcome email to %s: %v", email, err)
			}
		}(s.Email, s.Name)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Studio: studioResponse(s),
		Token:  token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	s, err := h.studioRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "studio not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(req.Password, dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, s.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !s.Active {
		return respondError(c, http.StatusForbidden, msgAccountInactive)
	}

	token, err := h.tokens.GenerateStudioToken(s.ID, s.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	c.SetCookie(auth.NewStudioCookie(token, h.tokens.StudioTokenTTL(), h.secureCookies))

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (h *AuthHandler) Me(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	s, err := h.studioRepo.GetByID(c.Request().Context(), studioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgStudioNotFound)
		}
		return respondError(c, http.StatusInternalServerError, msgStudioNotFound)
	}

	return c.JSON(http.StatusOK, studioResponse(s))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	studioID, err := auth.GetStudioID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req UpdateProfileRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.StudioName(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	ctx := c.Request().Context()
	err = h.studioRepo.Update(ctx, studioID, studio.UpdateStudioInput{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
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

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearedCookie(auth.StudioCookieName, h.secureCookies))
	return respondMessage(c, http.StatusOK, msgLoggedOut)
}
