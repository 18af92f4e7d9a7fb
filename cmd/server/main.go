package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"piiguard/internal/audit"
	"piiguard/internal/config"
	"piiguard/internal/domain"
	"piiguard/internal/handler"
	"piiguard/internal/llm"
	"piiguard/internal/llm/ollama"
	"piiguard/internal/llm/openai"
	"piiguard/internal/port"
	"piiguard/internal/repository/postgres"
	"piiguard/internal/router"
	"piiguard/internal/service"
	s3storage "piiguard/internal/storage/s3"
	"piiguard/internal/telemetry"
)

const (
	probeTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title PII Guard API
// @version 1.0
// @description Detects personally identifiable information in text using a locally hosted language model.
// @host localhost:8000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configureLogging(&cfg.Log)
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	flushTelemetry, err := telemetry.Init(&cfg.Sentry)
	if err != nil {
		log.Printf("Error reporting disabled: %v", err)
	}
	defer flushTelemetry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the model once; the outcome is fixed for the process lifetime.
	llm.RegisterProvider("ollama", ollama.Factory)
	llm.RegisterProvider("openai", openai.Factory)
	model, initErr := llm.NewChatModel(&cfg.LLM)
	probeCtx, cancelProbe := context.WithTimeout(ctx, probeTimeout)
	status := llm.Probe(probeCtx, model, initErr, cfg.LLM.ValidateOnStart)
	cancelProbe()
	if !status.OK() {
		log.Printf("LLM not available, /check will answer 503 until restart: %v", status.Err())
	}

	// Initialize audit trail
	sinkCtx, cancelSink := context.WithTimeout(ctx, probeTimeout)
	sink, err := newAuditSink(sinkCtx, cfg)
	cancelSink()
	if err != nil {
		log.Printf("Audit sink %q unavailable, ingested prompts will not be recorded: %v", cfg.Audit.Sink, err)
		sink = audit.NopSink{}
	}
	auditSvc := service.NewAuditService(sink)
	defer func() {
		if err := auditSvc.Close(); err != nil {
			log.Printf("closing audit trail: %v", err)
		}
	}()

	// Initialize services
	extractionSvc := service.NewExtractionService(model, status)

	// Initialize handlers
	piiH := handler.NewPIIHandler(extractionSvc, auditSvc)
	healthH := handler.NewHealthHandler(status)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, piiH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (model %s, audit %s)", cfg.Server.Port, status.Model(), sink.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func configureLogging(cfg *config.LogConfig) {
	if cfg.Format == "plain" {
		log.SetFlags(0)
		return
	}
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lmicroseconds)
}

// newAuditSink builds the sink selected by audit.sink.
func newAuditSink(ctx context.Context, cfg *config.Config) (port.AuditSink, error) {
	switch domain.AuditSinkType(cfg.Audit.Sink) {
	case domain.AuditSinkFile:
		sink, err := audit.NewFileSink(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit file: %w", err)
		}
		return sink, nil
	case domain.AuditSinkS3:
		storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return audit.NewObjectSink(storage, cfg.S3.Bucket, cfg.Audit.S3Prefix), nil
	case domain.AuditSinkPostgres:
		if cfg.DB.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DB.MigrationsURL, cfg.DB.DSN()); err != nil {
				return nil, fmt.Errorf("failed to migrate audit table: %w", err)
			}
		}
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return audit.NewRepositorySink(postgres.NewIngestLogRepo(db), db), nil
	default:
		return audit.NopSink{}, nil
	}
}
