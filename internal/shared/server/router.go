// Package server assembles the Gin engine: middleware chain, dependencies
// and routes.
package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/admission"
	"cvsec-backend/internal/analyses"
	"cvsec-backend/internal/config"
	"cvsec-backend/internal/llm"
	llmopenai "cvsec-backend/internal/llm/openai"
	"cvsec-backend/internal/services/health"
	"cvsec-backend/internal/shared/metrics"
	"cvsec-backend/internal/shared/server/middleware"
	"cvsec-backend/internal/shared/server/respond"
	"cvsec-backend/internal/staging"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxFileSizeBytes()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	store, err := newStagingStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("staging store: %w", err)
	}
	client, err := newLLMClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	gate := admission.NewGate(cfg.ConcurrentRequestsLimit)
	orch := analyses.NewOrchestrator(client, cfg.RetryMaxAttempts, cfg.RetryDelays, cfg.AnalysisTimeout)
	analysisHandler := analyses.NewHandler(store, orch, cfg.MaxFileSizeBytes(), cfg.AnalysisVersion)
	healthSvc := health.NewService(cfg.AnalysisVersion, cfg.Env)

	api := r.Group("/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})

	// Auth runs before admission so unauthenticated requests never consume
	// a concurrency slot; neither reads the request body.
	analyze := api.Group("")
	analyze.Use(
		middleware.APIKeyAuth(cfg.APIKeys),
		middleware.Admission(gate),
	)
	analysisHandler.RegisterRoutes(analyze)

	r.GET("/metrics", metrics.Handler())

	return r, nil
}

func newStagingStore(ctx context.Context, cfg config.Config) (staging.Store, error) {
	if cfg.StagingBackend == "s3" {
		return staging.NewS3(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	}
	return staging.NewLocal(cfg.LocalStagingDir), nil
}

func newLLMClient(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "", "openai":
		return llmopenai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
