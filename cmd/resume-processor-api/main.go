// cmd/resume-processor-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/Sai-Prashanth123/resume-processor/internal/api/rest/v1"
	"github.com/Sai-Prashanth123/resume-processor/internal/app"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/connector"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/extraction"
	llmInfra "github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/prober"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/app.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	if missing := cfg.MissingCritical(); len(missing) > 0 {
		log.Warn("Missing critical environment variables", "variables", missing)
		log.Warn("Some functionality may not work correctly")
	}

	deps, err := initializeDependencies(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	return startServerWithGracefulShutdown(cfg, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
	closers  []func() error
}

type appServices struct {
	resumeUpload   resumes.ResumeUploadService
	resumeMetadata resumes.ResumeMetadataService
	resumeDownload resumes.ResumeDownloadService
	pipeline       pipeline.PipelineService
	maintenance    maintenance.MaintenanceService
}

func (d *appDependencies) close(log logger.Logger) {
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			log.Error("Failed to release resource", "error", err)
		}
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(ctx context.Context, cfg *config.AppConfig, log logger.Logger) (*appDependencies, error) {
	deps := &appDependencies{}

	urls, err := bloburl.NewBuilder(cfg.Blob.BaseURL, cfg.Blob.ContainerName, cfg.Blob.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create blob url builder: %w", err)
	}

	st, err := persistence.OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}
	deps.closers = append(deps.closers, st.Close)

	blobConnector, sasConnector, err := initializeAzureConnectors(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize connectors: %w", err)
	}

	completer := initializeCompleter(cfg, deps, log)

	services, err := initializeApplicationServices(cfg, st, blobConnector, sasConnector, completer, urls, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	deps.services = services

	return deps, nil
}

// initializeAzureConnectors sets up the blob connector and, when configured, the SAS one
func initializeAzureConnectors(cfg *config.AppConfig, log logger.Logger) (blobs.BlobConnector, blobs.BlobConnector, error) {
	var blobConnector blobs.BlobConnector
	if cfg.Blob.ConnectionString == "" {
		log.Warn("Blob storage not configured, file operations will fail", "container", cfg.Blob.ContainerName)
		blobConnector = newUnavailableConnector(cfg.Blob.BaseURL, cfg.Blob.ContainerName)
	} else {
		var err error
		blobConnector, err = connector.NewAzureBlobConnector(cfg.Blob.ConnectionString, cfg.Blob.ContainerName, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Azure blob connector: %w", err)
		}
	}

	if cfg.Blob.ConnectionStringWithSAS == "" {
		log.Info("Blob connector initialized")
		return blobConnector, nil, nil
	}

	sasConnector, err := connector.NewAzureBlobConnector(cfg.Blob.ConnectionStringWithSAS, cfg.Blob.ContainerName, log)
	if err != nil {
		log.Warn("SAS blob connector unavailable, using the default connector", "error", err)
		return blobConnector, nil, nil
	}

	log.Info("Azure blob connectors initialized successfully")
	return blobConnector, sasConnector, nil
}

// initializeCompleter builds the model client with retries and, when Redis is configured,
// a response cache in front of it
func initializeCompleter(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) llm.Completer {
	completer, err := llmInfra.NewOpenAICompleter(&cfg.LLM)
	if err != nil {
		log.Warn("Language model client unavailable", "error", err)
		completer = unavailableCompleter{err: err}
	}

	completer = llmInfra.NewRetryingCompleter(completer, cfg.LLM.MaxRetries, 2*time.Second, log)

	if !cfg.Cache.Enabled() {
		return completer
	}

	client, err := llmInfra.NewRedisClient(&cfg.Cache)
	if err != nil {
		log.Warn("Completion cache disabled", "error", err)
		return completer
	}
	deps.closers = append(deps.closers, client.Close)
	log.Info("Completion cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)

	return llmInfra.NewCachedCompleter(completer, client, cfg.Cache.TTL, log)
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.AppConfig,
	st *persistence.Stores,
	blobConnector blobs.BlobConnector,
	sasConnector blobs.BlobConnector,
	completer llm.Completer,
	urls *bloburl.Builder,
	log logger.Logger,
) (*appServices, error) {
	blobProber := prober.NewRestyProber(log)
	renderer := rendering.NewPDFRenderer(log)
	extractor := extraction.NewTextExtractor(log)

	parser, err := llmInfra.NewResumeParser(completer, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume parser: %w", err)
	}

	analyzer, err := llmInfra.NewJobAnalyzer(completer, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create job analyzer: %w", err)
	}

	tailor, err := llmInfra.NewResumeTailor(completer, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume tailor: %w", err)
	}

	saver, err := app.NewBlobSaver(blobConnector, blobProber, urls, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob saver: %w", err)
	}

	recoverer, err := app.NewBlobRecoverer(blobConnector, blobProber, saver, renderer, urls, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob recoverer: %w", err)
	}

	maintenanceService, err := app.NewMaintenanceService(
		blobConnector, sasConnector, saver, blobProber, renderer,
		st.ResumeRepo, recoverer, urls, cfg.AdminKey, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create maintenance service: %w", err)
	}

	resumeUploadService, err := app.NewResumeUploadService(st.ResumeRepo, extractor, parser, saver, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume upload service: %w", err)
	}

	resumeMetadataService, err := app.NewResumeMetadataService(
		st.ResumeRepo, blobConnector, sasConnector, blobProber,
		maintenanceService, urls, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume metadata service: %w", err)
	}

	resumeDownloadService, err := app.NewResumeDownloadService(st.ResumeRepo, blobProber, recoverer, urls, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume download service: %w", err)
	}

	pipelineService, err := app.NewPipelineService(
		extractor, parser, analyzer, tailor, renderer,
		blobConnector, st.DocumentStore, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		resumeUpload:   resumeUploadService,
		resumeMetadata: resumeMetadataService,
		resumeDownload: resumeDownloadService,
		pipeline:       pipelineService,
		maintenance:    maintenanceService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", v1.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", "Content-Type", "Content-Disposition", v1.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(v1.RequestID(), v1.Metrics())

	v1.SetupRoutes(r,
		deps.services.resumeUpload,
		deps.services.resumeMetadata,
		deps.services.resumeDownload,
		deps.services.pipeline,
		deps.services.maintenance,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
