package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"cvsec-backend/internal/shared/telemetry"
)

const minAPIKeyLength = 16

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	Debug           bool
	CORSAllowOrigin []string

	// Authentication: allow-listed API keys for X-API-Key.
	APIKeys []string

	// Upload limits.
	MaxFileSizeMB int

	// Pipeline limits.
	ConcurrentRequestsLimit int
	RetryMaxAttempts        int
	RetryDelays             []time.Duration
	AnalysisTimeout         time.Duration

	// Analysis collaborator.
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	AnalysisVersion string

	// Ephemeral staging backend.
	StagingBackend string // "local" or "s3"
	LocalStagingDir string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("DEBUG", false)
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("API_KEYS", "")
	v.SetDefault("MAX_FILE_SIZE_MB", 10)
	v.SetDefault("CONCURRENT_REQUESTS_LIMIT", 10)
	v.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	v.SetDefault("RETRY_DELAYS", "1,2,4")
	v.SetDefault("ANALYSIS_TIMEOUT_SECONDS", 30)
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("ANALYSIS_VERSION", "1.0.0")
	v.SetDefault("STAGING_BACKEND", "local")
	v.SetDefault("LOCAL_STAGING_DIR", "")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "staging/")

	cfg := Config{
		Port:                    v.GetString("PORT"),
		Env:                     normalizeEnv(v.GetString("ENV")),
		Debug:                   v.GetBool("DEBUG"),
		CORSAllowOrigin:         splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		APIKeys:                 filterAPIKeys(splitAndTrim(v.GetString("API_KEYS"))),
		MaxFileSizeMB:           v.GetInt("MAX_FILE_SIZE_MB"),
		ConcurrentRequestsLimit: v.GetInt("CONCURRENT_REQUESTS_LIMIT"),
		RetryMaxAttempts:        v.GetInt("RETRY_MAX_ATTEMPTS"),
		RetryDelays:             parseDelays(v.GetString("RETRY_DELAYS")),
		AnalysisTimeout:         time.Duration(v.GetInt("ANALYSIS_TIMEOUT_SECONDS")) * time.Second,
		LLMProvider:             v.GetString("LLM_PROVIDER"),
		LLMModel:                v.GetString("LLM_MODEL"),
		OpenAIAPIKey:            v.GetString("OPENAI_API_KEY"),
		AnalysisVersion:         v.GetString("ANALYSIS_VERSION"),
		StagingBackend:          normalizeStagingBackend(v.GetString("STAGING_BACKEND")),
		LocalStagingDir:         v.GetString("LOCAL_STAGING_DIR"),
		AWSRegion:               v.GetString("AWS_REGION"),
		S3Bucket:                v.GetString("S3_BUCKET"),
		S3Prefix:                v.GetString("S3_PREFIX"),
	}

	if len(cfg.APIKeys) == 0 {
		telemetry.Warn("config.no_api_keys", map[string]any{
			"detail": "API_KEYS is empty; every analyze request will be rejected",
		})
	}
	if cfg.RetryMaxAttempts < 1 {
		cfg.RetryMaxAttempts = 1
	}
	if len(cfg.RetryDelays) == 0 {
		cfg.RetryDelays = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = 30 * time.Second
	}
	if cfg.ConcurrentRequestsLimit < 1 {
		cfg.ConcurrentRequestsLimit = 1
	}

	return cfg
}

// MaxFileSizeBytes returns the upload cap in bytes.
func (c Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// filterAPIKeys drops keys shorter than the minimum length so a weak key can
// never authenticate.
func filterAPIKeys(keys []string) []string {
	var out []string
	for _, k := range keys {
		if len(k) < minAPIKeyLength {
			telemetry.Warn("config.api_key_too_short", map[string]any{
				"min_length": minAPIKeyLength,
			})
			continue
		}
		out = append(out, k)
	}
	return out
}

func parseDelays(raw string) []time.Duration {
	var out []time.Duration
	for _, p := range splitAndTrim(raw) {
		d, err := time.ParseDuration(p + "s")
		if err != nil || d <= 0 {
			return nil
		}
		out = append(out, d)
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStagingBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
