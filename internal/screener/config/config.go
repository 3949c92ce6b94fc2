package config

import (
	"time"

	"golang-stock-screener/pkg/common"
	"golang-stock-screener/pkg/config"
)

// Storage backends for the per-symbol datasets.
const (
	StorageCSV      = "csv"
	StoragePostgres = "postgres"
)

// Screener holds the screening pipeline configuration.
type Screener struct {
	Storage    string `mapstructure:"storage"`
	DataDir    string `mapstructure:"data_dir"`
	FilePrefix string `mapstructure:"file_prefix"`
	FileSuffix string `mapstructure:"file_suffix"`
	// DefaultLimit applies when a query names no count. 0 returns everything.
	DefaultLimit int `mapstructure:"default_limit"`
	ScanWorkers  int `mapstructure:"scan_workers"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	Temperature         float32       `mapstructure:"temperature"`
	MaxOutputTokens     int           `mapstructure:"max_output_tokens"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Cache holds cache TTLs and the refresh schedule.
type Cache struct {
	SeriesTTL      time.Duration `mapstructure:"series_ttl"`
	TranslationTTL time.Duration `mapstructure:"translation_ttl"`
	RefreshCron    string        `mapstructure:"refresh_cron"`
}

// Config holds the full configuration for the screener service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Screener Screener        `mapstructure:"screener"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Cache    Cache           `mapstructure:"cache"`
}

// RequiresDatabase reports whether the service cannot run without postgres.
// With csv storage the database only backs user accounts.
func (c *Config) RequiresDatabase() bool {
	return c.Screener.Storage == StoragePostgres
}

var defaults = map[string]interface{}{
	"app.name":                      "stock-screener",
	"logger.level":                  "info",
	"logger.encoding":               "json",
	"api.port":                      5000,
	"api.read_timeout":              "30s",
	"api.write_timeout":             "60s",
	"api.shutdown_timeout":          "10s",
	"database.host":                 "",
	"database.port":                 5432,
	"database.user":                 "",
	"database.password":             "",
	"database.name":                 "",
	"database.ssl_mode":             "disable",
	"redis.host":                    "",
	"redis.port":                    6379,
	"redis.password":                "",
	"redis.db":                      0,
	"redis.pool_size":               10,
	"screener.storage":              StorageCSV,
	"screener.data_dir":             "data/uploads",
	"screener.file_prefix":          common.DefaultFilePrefix,
	"screener.file_suffix":          common.DefaultFileSuffix,
	"screener.default_limit":        0,
	"screener.scan_workers":         8,
	"gemini.api_key":                "",
	"gemini.model":                  "gemini-2.5-flash-lite",
	"gemini.temperature":            0.2,
	"gemini.max_output_tokens":      512,
	"gemini.timeout":                "20s",
	"gemini.max_request_per_minute": 60,
	"cache.series_ttl":              "10m",
	"cache.translation_ttl":         "1h",
	"cache.refresh_cron":            "@every 15m",
}

// Load loads the screener configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
