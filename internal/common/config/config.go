// internal/common/config/config.go
package config

import (
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	API           APIConfig          `mapstructure:"api"`
	Search        SearchConfig       `mapstructure:"search"`
	Listing       ListingConfig      `mapstructure:"listing"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// APIConfig points at the upstream photographer API.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	CollectionPath string `mapstructure:"collection_path"`
	DetailBaseURL  string `mapstructure:"detail_base_url"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds, 0 disables the client timeout
}

// CollectionURL joins the base URL and collection path.
func (a APIConfig) CollectionURL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(a.CollectionPath, "/")
}

// SearchConfig holds fuzzy search and search bar settings.
type SearchConfig struct {
	Engine        string  `mapstructure:"engine"` // fuse | subsequence
	Threshold     float64 `mapstructure:"threshold"`
	DebounceMs    int     `mapstructure:"debounce_ms"`
	FeaturedCount int     `mapstructure:"featured_count"`
}

// ListingConfig holds the listing page filter controls.
type ListingConfig struct {
	PriceMax      float64   `mapstructure:"price_max"`
	PriceStep     float64   `mapstructure:"price_step"`
	Styles        []string  `mapstructure:"styles"`
	RatingOptions []float64 `mapstructure:"rating_options"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// NotificationConfig holds optional fan-out of store state changes.
type NotificationConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
