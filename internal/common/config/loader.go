// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultCollectionPath = "/api/photographers"
	DefaultDetailBaseURL  = "https://my-json-server.typicode.com/satyampathak12/pixisphere-data"
)

var defaultStyles = []string{"Traditional", "Candid", "Studio", "Outdoor"}

var defaultRatingOptions = []float64{0, 4, 3, 2}

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and applies environment overrides (api.base_url -> API_BASE_URL).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // env overlay is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("app.name", "pixisphere")
	v.SetDefault("app.environment", "development")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.collection_path", DefaultCollectionPath)
	v.SetDefault("api.detail_base_url", DefaultDetailBaseURL)
	v.SetDefault("api.timeout", 0)
	v.SetDefault("search.engine", "fuse")
	v.SetDefault("logging.level", "info")
	v.SetDefault("notifications.redis.enabled", false)
	v.SetDefault("notifications.redis.address", "")
	v.SetDefault("metrics.enabled", true)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the module root.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values. Unset
// variables expand to the empty string so required keys fail validation.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pixisphere"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.API.CollectionPath == "" {
		cfg.API.CollectionPath = DefaultCollectionPath
	}
	if cfg.API.DetailBaseURL == "" {
		cfg.API.DetailBaseURL = DefaultDetailBaseURL
	}

	if cfg.Search.Engine == "" {
		cfg.Search.Engine = "fuse"
	}
	if cfg.Search.Threshold == 0 {
		cfg.Search.Threshold = 0.3
	}
	if cfg.Search.DebounceMs == 0 {
		cfg.Search.DebounceMs = 300
	}
	if cfg.Search.FeaturedCount == 0 {
		cfg.Search.FeaturedCount = 3
	}

	if cfg.Listing.PriceMax == 0 {
		cfg.Listing.PriceMax = 100000
	}
	if cfg.Listing.PriceStep == 0 {
		cfg.Listing.PriceStep = 1000
	}
	if len(cfg.Listing.Styles) == 0 {
		cfg.Listing.Styles = append([]string(nil), defaultStyles...)
	}
	if len(cfg.Listing.RatingOptions) == 0 {
		cfg.Listing.RatingOptions = append([]float64(nil), defaultRatingOptions...)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Notifications.Redis.Channel == "" {
		cfg.Notifications.Redis.Channel = "pixisphere:listing"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0")
	}

	switch cfg.Search.Engine {
	case "fuse", "subsequence":
	default:
		return fmt.Errorf("search.engine must be one of fuse, subsequence (got %q)", cfg.Search.Engine)
	}
	if cfg.Search.Threshold < 0 || cfg.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be within [0, 1]")
	}

	if cfg.Notifications.Redis.Enabled && cfg.Notifications.Redis.Address == "" {
		return fmt.Errorf("notifications.redis.address is required when redis notifications are enabled")
	}

	return nil
}
