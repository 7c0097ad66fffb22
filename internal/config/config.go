// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Resolve  ResolveConfig  `yaml:"resolve" mapstructure:"resolve"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Run      RunConfig      `yaml:"run" mapstructure:"run"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig holds the fixed paths the pipeline reads and writes.
type DataConfig struct {
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`
	CleanedDir  string `yaml:"cleaned_dir" mapstructure:"cleaned_dir"`
}

// SourceConfig holds the URLs of the quarterly compressed extracts.
type SourceConfig struct {
	ListingsURL string  `yaml:"listings_url" mapstructure:"listings_url"`
	ReviewsURL  string  `yaml:"reviews_url" mapstructure:"reviews_url"`
	CalendarURL string  `yaml:"calendar_url" mapstructure:"calendar_url"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// ClassifyConfig configures the amenity category classifier.
type ClassifyConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// ResolveConfig configures entity resolution.
type ResolveConfig struct {
	// Region is the fixed market label appended to every listing location
	// and used to fill missing host locations.
	Region string `yaml:"region" mapstructure:"region"`
}

// StoreConfig configures the load target.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	Schema      string `yaml:"schema" mapstructure:"schema"`
}

// RunConfig configures the full-pipeline driver.
type RunConfig struct {
	StageRetries   int `yaml:"stage_retries" mapstructure:"stage_retries"`
	RetryDelaySecs int `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
}

// ServerConfig configures the HTTP trigger server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BNBETL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.download_dir", "data/downloads")
	v.SetDefault("data.cleaned_dir", "data/cleaned")
	v.SetDefault("source.rate_per_sec", 2)
	v.SetDefault("source.timeout_secs", 120)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.user_agent", "bnbetl/1.0")
	v.SetDefault("classify.similarity_threshold", 0.2)
	v.SetDefault("resolve.region", "Boston, MA")
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.schema", "silver")
	v.SetDefault("store.sqlite_path", "data/bnb.db")
	v.SetDefault("run.stage_retries", 1)
	v.SetDefault("run.retry_delay_secs", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
