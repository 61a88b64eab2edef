package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"weshow/internal/auth"
	"weshow/internal/config"
	"weshow/internal/http"
	"weshow/internal/registry"
	"weshow/internal/repository"
	"weshow/internal/repository/postgres"
	"weshow/internal/storage/s3"
	"weshow/pkg/logger"
	"weshow/pkg/mailer"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	serviceName      = "weshow"

	// DATA_BACKEND=memory swaps the client/project store for the in-memory
	// registry; useful for demos and local work without a database.
	envDataBackend    = "DATA_BACKEND"
	dataBackendMemory = "memory"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	envLoaded := godotenv.Load(envFilePath) == nil

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{ServiceName: serviceName})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		ServiceName: serviceName,
	})

	if !envLoaded {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("database connection established")

	studioRepo := postgres.NewStudioRepository(db)
	adminRepo := postgres.NewMasterAdminRepository(db)

	var clientRepo repository.ClientRepository
	var projectRepo repository.ProjectRepository
	if os.Getenv(envDataBackend) == dataBackendMemory {
		store := registry.New()
		clientRepo = store
		projectRepo = store
		log.Warn().Msg("using in-memory registry backend; data will not survive a restart")
	} else {
		clientRepo = postgres.NewClientRepository(db)
		projectRepo = postgres.NewProjectRepository(db)
	}

	uploader, err := s3.NewUploader(&cfg.AWS, cfg.Upload.MaxImageSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create S3 uploader")
	}

	log.Info().Str("bucket", cfg.AWS.Bucket).Msg("S3 uploader initialized")

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.StudioTokenTTL, cfg.JWT.AdminTokenTTL)
	trial := auth.NewTrialChecker(studioRepo, cfg.Trial.GracePeriod)
	gateway := auth.NewGateway(tokens, trial, cfg.IsProduction(), log)

	mail, err := mailer.New(mailer.Config{
		APIKey:      cfg.Mail.ProviderAPIKey,
		FromAddress: cfg.Mail.FromAddress,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer")
	}

	serverDeps := &http.ServerDependencies{
		Config:      cfg,
		StudioRepo:  studioRepo,
		AdminRepo:   adminRepo,
		ClientRepo:  clientRepo,
		ProjectRepo: projectRepo,
		Uploader:    uploader,
		Tokens:      tokens,
		Gateway:     gateway,
		Mailer:      mail,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
