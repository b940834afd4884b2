package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/keyring"
	"github.com/alkime/teeshot/internal/storage"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env       string `envconfig:"ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	StaticDir string `envconfig:"STATIC_DIR" default:"./public"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Generation backends
	TextProvider    string        `envconfig:"TEXT_PROVIDER" default:"gemini"`
	ImageProvider   string        `envconfig:"IMAGE_PROVIDER" default:"gemini"`
	TextModels      []string      `envconfig:"TEXT_MODELS"`
	GeminiAPIKey    string        `envconfig:"GEMINI_API_KEY"`
	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"3m"`
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"1"`
	RetryBaseDelay  time.Duration `envconfig:"RETRY_BASE_DELAY" default:"2s"`

	// Image storage
	S3AccessKeyID     string `envconfig:"AWS_S3_ACCESSKEYID"`
	S3SecretAccessKey string `envconfig:"AWS_S3_SECRETACCESSKEY"`
	S3Region          string `envconfig:"AWS_S3_REGION"`
	S3Bucket          string `envconfig:"AWS_S3_IMAGE_ROOT"`
	S3Folder          string `envconfig:"AWS_S3_IMAGE_WHERE2USE" default:"images"`
	ImageMaxDimension int    `envconfig:"IMAGE_MAX_DIMENSION" default:"1600"`
	ImageJPEGQuality  int    `envconfig:"IMAGE_JPEG_QUALITY" default:"85"`

	// Sessions
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"6h"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// FillFromKeychain sets any empty credential from the system keychain.
func (c *Config) FillFromKeychain() {
	fill := func(dst *string, k keyring.APIKey) {
		if *dst == "" {
			*dst = keyring.Lookup(k)
		}
	}
	fill(&c.GeminiAPIKey, keyring.Gemini)
	fill(&c.AnthropicAPIKey, keyring.Anthropic)
	fill(&c.OpenAIAPIKey, keyring.OpenAI)
	fill(&c.S3AccessKeyID, keyring.AWSAccessKeyID)
	fill(&c.S3SecretAccessKey, keyring.AWSSecretAccessKey)
}

// Keys returns the generation backend credentials.
func (c *Config) Keys() genai.Keys {
	return genai.Keys{
		Gemini:    c.GeminiAPIKey,
		Anthropic: c.AnthropicAPIKey,
		OpenAI:    c.OpenAIAPIKey,
	}
}

// Storage returns the S3 settings.
func (c *Config) Storage() storage.Config {
	return storage.Config{
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		Region:          c.S3Region,
		Bucket:          c.S3Bucket,
		Folder:          c.S3Folder,
		MaxDimension:    c.ImageMaxDimension,
		JPEGQuality:     c.ImageJPEGQuality,
	}
}

// RetryPolicy returns the text generation retry policy.
func (c *Config) RetryPolicy(logger *slog.Logger) genai.RetryPolicy {
	p := genai.DefaultRetryPolicy(logger)
	p.MaxRetries = c.MaxRetries
	p.BaseDelay = c.RetryBaseDelay

	return p
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' https://*.amazonaws.com data:; " +
			"media-src 'self' blob:; " +
			"connect-src 'self' wss:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' https: data:; " +
		"media-src 'self' blob:; " +
		"connect-src 'self' ws: wss:"
}

// Models returns the configured text model order, or nil to use the
// provider default.
func (c *Config) Models() []string {
	var out []string
	for _, m := range c.TextModels {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}

	return out
}
