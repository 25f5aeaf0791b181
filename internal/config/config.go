// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

// DefaultMaxUploadBytes caps a single upload body.
const DefaultMaxUploadBytes int64 = 32 << 20

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the log encoder: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// MaxUploadBytes bounds the multipart body accepted by POST /upload.
	MaxUploadBytes int64 `koanf:"max_upload_bytes" validate:"gt=0"`

	// AllowedOrigins lists the CORS origins allowed to call the API.
	AllowedOrigins []string `koanf:"allowed_origins" validate:"dive,required"`

	// RateLimitRPS limits uploads per second across all clients. Zero disables it.
	RateLimitRPS float64 `koanf:"rate_limit_rps" validate:"gte=0"`

	// RateLimitBurst is the token bucket size used with RateLimitRPS.
	RateLimitBurst int `koanf:"rate_limit_burst" validate:"gte=1"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		MaxUploadBytes: DefaultMaxUploadBytes,
		AllowedOrigins: []string{
			"http://127.0.0.1:51115",
			"http://localhost:3000",
		},
		RateLimitRPS:   0,
		RateLimitBurst: 10,
	}
}
