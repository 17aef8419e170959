package infra

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv     string
	Port       string
	AssetsDir  string
	OutputsDir string

	DefaultRegion string
	GeoIPDBPath   string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	ModerationEnabled bool

	SyncEnabled  bool
	S3Bucket     string
	S3Region     string
	S3BaseURL    string
	RemotePrefix string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from the environment (and an optional .env
// file) and applies defaults where needed. Nothing is required: without
// credentials the pipeline degrades to the placeholder engine and local-only
// outputs.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		AssetsDir:         getEnv("ASSETS_DIR", "assets"),
		OutputsDir:        getEnv("OUTPUTS_DIR", "outputs"),
		DefaultRegion:     getEnv("DEFAULT_REGION", "Global"),
		GeoIPDBPath:       os.Getenv("GEOIP_DB_PATH"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash-preview-image-generation"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "dall-e-3"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ModerationEnabled: getEnvBool("MODERATION_ENABLED", true),
		SyncEnabled:       getEnvBool("SYNC_ENABLED", false),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3BaseURL:         os.Getenv("S3_BASE_URL"),
		RemotePrefix:      getEnv("REMOTE_PREFIX", "outputs"),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.SyncEnabled && cfg.S3Bucket == "" {
		cfg.SyncEnabled = false
	}

	return cfg, nil
}

// UploadsDir returns the directory holding user-supplied hero images.
func (c *Config) UploadsDir() string { return filepath.Join(c.AssetsDir, "uploads") }

// GeneratedDir returns the region-scoped generated hero cache.
func (c *Config) GeneratedDir() string { return filepath.Join(c.AssetsDir, "generated") }

// LogosDir returns the directory searched for brand logos.
func (c *Config) LogosDir() string { return filepath.Join(c.AssetsDir, "logos") }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
