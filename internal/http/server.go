package http

import (
	"context"
	stdhttp "net/http"

	"weshow/internal/auth"
	"weshow/internal/config"
	"weshow/internal/http/handler"
	"weshow/internal/http/middleware"
	"weshow/internal/repository"
	"weshow/internal/resolve"
	"weshow/internal/storage/s3"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config      *config.Config
	StudioRepo  repository.StudioRepository
	AdminRepo   repository.MasterAdminRepository
	ClientRepo  repository.ClientRepository
	ProjectRepo repository.ProjectRepository
	Uploader    *s3.Uploader
	Tokens      *auth.TokenService
	Gateway     *auth.Gateway
	Mailer      handler.WelcomeMailer
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	secureCookies := deps.Config.IsProduction()

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// The session gateway guards every /studio and /master-admin route, page
	// and API alike. Route handlers never re-check authentication.
	e.Use(deps.Gateway.Middleware())

	// Strict rate limiting for credential endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	resolver := resolve.NewResolver(deps.ClientRepo, deps.ProjectRepo)

	authHandler := handler.NewAuthHandler(deps.StudioRepo, deps.ProjectRepo, deps.Tokens, deps.Mailer, secureCookies)
	adminHandler := handler.NewAdminHandler(deps.AdminRepo, deps.StudioRepo, deps.Tokens, secureCookies)
	clientHandler := handler.NewClientHandler(deps.ClientRepo, resolver)
	projectHandler := handler.NewProjectHandler(deps.ProjectRepo, resolver)
	uploadHandler := handler.NewUploadHandler(deps.Uploader)
	viewerHandler := handler.NewViewerHandler(deps.StudioRepo, deps.ClientRepo, deps.ProjectRepo, resolver)

	e.GET("/health", healthCheck)

	// Registration wizard and login: reachable without a session.
	e.POST("/api/studio/check-email", authHandler.CheckEmail, strictRateLimiter.Middleware())
	e.POST("/api/studio/register", authHandler.Register, strictRateLimiter.Middleware())
	e.POST("/api/studio/login", authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/api/studio/upload/logo", uploadHandler.UploadLogo)
	e.POST("/api/studio/upload/photo", uploadHandler.UploadPhoto)
	e.POST("/api/master-admin/login", adminHandler.Login, strictRateLimiter.Middleware())

	// Client-facing gallery viewer: public by design.
	e.GET("/api/view/:studio/:client/:project", viewerHandler.ViewGallery)

	// Studio dashboard API. The gateway has already authenticated and
	// trial-gated anything that reaches these handlers.
	studioAPI := e.Group("/api/studio")
	studioAPI.GET("/me", authHandler.Me)
	studioAPI.PUT("/me", authHandler.UpdateProfile)
	studioAPI.POST("/logout", authHandler.Logout)

	studioAPI.GET("/clients", clientHandler.List)
	studioAPI.POST("/clients", clientHandler.Create)
	studioAPI.GET("/clients/:client", clientHandler.Get)
	studioAPI.PUT("/clients/:client", clientHandler.Update)
	studioAPI.DELETE("/clients/:client", clientHandler.Delete)

	studioAPI.GET("/clients/:client/projects", projectHandler.List)
	studioAPI.POST("/clients/:client/projects", projectHandler.Create)
	studioAPI.GET("/clients/:client/projects/:project", projectHandler.Get)
	studioAPI.PUT("/clients/:client/projects/:project", projectHandler.Update)
	studioAPI.DELETE("/clients/:client/projects/:project", projectHandler.Delete)
	studioAPI.PATCH("/clients/:client/projects/:project/status", projectHandler.UpdateStatus)
	studioAPI.PUT("/clients/:client/projects/:project/photos/reorder", projectHandler.ReorderPhotos)

	studioAPI.GET("/tags", projectHandler.ListTags)
	studioAPI.DELETE("/tags/:label", projectHandler.DeleteTag)

	// Master-admin panel API.
	adminAPI := e.Group("/api/master-admin")
	adminAPI.GET("/studios", adminHandler.ListStudios)
	adminAPI.PATCH("/studios/:id/active", adminHandler.SetStudioActive)
	adminAPI.POST("/logout", adminHandler.Logout)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
