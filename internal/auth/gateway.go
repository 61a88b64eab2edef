package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "weshow/pkg/errors"
	"weshow/pkg/logger"
)

type area int

const (
	areaPublic area = iota
	areaStudio
	areaAdmin
)

// Protected path prefixes and their exclusions. Everything outside the
// protected prefixes passes through untouched.
var (
	studioPrefixes = []string{"/studio/", "/api/studio/"}
	adminPrefixes  = []string{"/master-admin/", "/api/master-admin/"}

	excludedPrefixes = []string{
		"/studio/auth/",
		"/master-admin/auth/",
		"/_next/",
		"/static/",
		"/assets/",
	}

	excludedPaths = []string{
		"/studio",
		"/master-admin",
		"/studio/registration-success",
		"/studio/subscription/upgrade",
		"/api/studio/check-email",
		"/api/studio/register",
		"/api/studio/login",
		"/api/studio/upload/logo",
		"/api/studio/upload/photo",
		"/api/master-admin/login",
	}
)

// Gateway is the per-request authentication and trial-gating layer. Every
// failure is terminal for the request and resolves to exactly one of:
// pass-through, redirect-to-login, redirect-to-upgrade, or a JSON 401/403.
// A request is never forwarded with an unverified or expired token.
type Gateway struct {
	tokens        *TokenService
	trial         *TrialChecker
	secureCookies bool
	log           zerolog.Logger
}

func NewGateway(tokens *TokenService, trial *TrialChecker, secureCookies bool, log zerolog.Logger) *Gateway {
	return &Gateway{
		tokens:        tokens,
		trial:         trial,
		secureCookies: secureCookies,
		log:           log,
	}
}

func (g *Gateway) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			routeArea := classify(path)
			if routeArea == areaPublic || isExcluded(path) {
				return next(c)
			}

			isAPI := strings.HasPrefix(path, "/api/")

			token := extractBearerToken(c)
			if token == "" {
				token = extractCookieToken(c, routeArea)
			}
			if token == "" {
				return g.denyLogin(c, isAPI, routeArea, msgMissingToken)
			}

			switch routeArea {
			case areaStudio:
				return g.handleStudio(c, next, token, isAPI)
			case areaAdmin:
				return g.handleAdmin(c, next, token, isAPI)
			}

			return next(c)
		}
	}
}

func (g *Gateway) handleStudio(c echo.Context, next echo.HandlerFunc, token string, isAPI bool) error {
	claims, err := g.tokens.VerifyStudioToken(token)
	if err != nil {
		// Verification detail never reaches the client, and the token itself
		// never reaches the log.
		g.log.Warn().
			Str("path", c.Request().URL.Path).
			Str("reason", logger.SanitizeLogMessage(err.Error())).
			Msg("studio token rejected")
		return g.denyLogin(c, isAPI, areaStudio, msgInvalidOrExpiredToken)
	}

	if err := g.trial.Check(c.Request().Context(), claims.StudioID); err != nil {
		g.log.Warn().
			Str("studio_id", claims.StudioID.String()).
			Str("path", c.Request().URL.Path).
			Msg("trial gate denied request")
		return g.denyUpgrade(c, isAPI, err)
	}

	c.Set(ContextKeyStudioID, claims.StudioID)
	c.Set(ContextKeyEmail, claims.Email)
	c.Set(ContextKeyRole, RoleStudio)

	// Forward with the verified token re-attached and slide the cookie window.
	c.Request().Header.Set(headerAuthorization, "Bearer "+token)
	c.SetCookie(NewStudioCookie(token, g.tokens.StudioTokenTTL(), g.secureCookies))

	return next(c)
}

func (g *Gateway) handleAdmin(c echo.Context, next echo.HandlerFunc, token string, isAPI bool) error {
	claims, err := g.tokens.VerifyAdminToken(token)
	if err != nil {
		g.log.Warn().
			Str("path", c.Request().URL.Path).
			Str("reason", logger.SanitizeLogMessage(err.Error())).
			Msg("admin token rejected")
		return g.denyLogin(c, isAPI, areaAdmin, msgInvalidOrExpiredToken)
	}

	c.Set(ContextKeyAdminID, claims.ID)
	c.Set(ContextKeyRole, RoleMasterAdmin)
	c.Request().Header.Set(headerAuthorization, "Bearer "+token)

	return next(c)
}

func (g *Gateway) denyLogin(c echo.Context, isAPI bool, routeArea area, msg string) error {
	if isAPI {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
	}

	target := studioLoginPath
	if routeArea == areaAdmin {
		target = adminLoginPath
	}

	return g.redirect(c, target)
}

func (g *Gateway) denyUpgrade(c echo.Context, isAPI bool, err error) error {
	if isAPI {
		msg := msgTrialCheckFailed
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		return c.JSON(http.StatusForbidden, map[string]string{"error": msg})
	}

	return g.redirect(c, upgradePath)
}

// redirect attaches cache-busting headers so browsers and CDNs never cache
// an auth-sensitive redirect.
func (g *Gateway) redirect(c echo.Context, target string) error {
	h := c.Response().Header()
	h.Set(headerCacheControl, cacheControlValue)
	h.Set(headerPragma, pragmaValue)
	h.Set(headerExpires, expiresValue)

	return c.Redirect(http.StatusFound, target)
}

func classify(path string) area {
	for _, prefix := range studioPrefixes {
		if strings.HasPrefix(path, prefix) {
			return areaStudio
		}
	}
	for _, prefix := range adminPrefixes {
		if strings.HasPrefix(path, prefix) {
			return areaAdmin
		}
	}

	return areaPublic
}

func isExcluded(path string) bool {
	for _, p := range excludedPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// extractBearerToken prefers the Authorization header over any cookie.
func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func extractCookieToken(c echo.Context, routeArea area) string {
	name := StudioCookieName
	if routeArea == areaAdmin {
		name = AdminCookieName
	}

	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}

	return cookie.Value
}

func GetStudioID(c echo.Context) (uuid.UUID, error) {
	studioID := c.Get(ContextKeyStudioID)
	if studioID == nil {
		return uuid.Nil, apperrors.Unauthorized(msgStudioNotAuthed)
	}

	id, ok := studioID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidStudioIDCtx, nil)
	}

	return id, nil
}

func GetAdminID(c echo.Context) (uuid.UUID, error) {
	adminID := c.Get(ContextKeyAdminID)
	if adminID == nil {
		return uuid.Nil, apperrors.Unauthorized(msgAdminNotAuthed)
	}

	id, ok := adminID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidAdminIDCtx, nil)
	}

	return id, nil
}
