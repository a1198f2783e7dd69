// Package config defines client configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Gateway modes.
const (
	ModeAPI    = "api"
	ModeStatic = "static"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Mode selects the gateway backend: "api" or "static".
	Mode string `koanf:"mode"`

	// APIBaseURL is the remote game backend, e.g. "https://game.example.com".
	APIBaseURL string `koanf:"api_base_url"`

	// StaticDir holds players.json and missions.json for the static variant.
	StaticDir string `koanf:"static_dir"`

	// AdminName is the display name allowed to open the leaderboard.
	AdminName string `koanf:"admin_name"`

	// AdminPassword gates the leaderboard. A plain string compare, not a
	// security boundary; leave empty to disable the leaderboard entirely.
	AdminPassword string `koanf:"admin_password"`

	// MissionTimeoutSec is the mission-view budget before forced logout.
	MissionTimeoutSec int `koanf:"mission_timeout_sec"`

	// HTTPTimeoutSec bounds each gateway request.
	HTTPTimeoutSec int `koanf:"http_timeout_sec"`

	// MetricsAddr, when set, serves Prometheus metrics, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// GameURL is the shareable web address encoded by the invite QR code.
	GameURL string `koanf:"game_url"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Mode:              ModeAPI,
		APIBaseURL:        "http://localhost:8080",
		AdminName:         "Lucas",
		MissionTimeoutSec: 10,
		HTTPTimeoutSec:    15,
	}
}
