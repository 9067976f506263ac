// Package config loads and validates the application configuration from a
// YAML file, with environment variable overrides under the DRAW_DASH prefix.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete configuration for both binaries.
type Config struct {
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Server    ServerConfig    `mapstructure:"server"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SnapshotConfig describes where the estimate document lives and how long
// the one-shot fetch may take.
type SnapshotConfig struct {
	Source  string        `mapstructure:"source"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds the dashboard HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TelegramConfig holds the optional result-notification settings.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// StorageConfig holds the history database settings.
type StorageConfig struct {
	DBPath       string `mapstructure:"db_path"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// EstimatorConfig holds the inputs for the estimation pipeline: the draw
// roster CSVs, the room list, and the removal assumptions.
type EstimatorConfig struct {
	UpperclassCSV  string   `mapstructure:"upperclass_csv"`
	RoomsCSV       string   `mapstructure:"rooms_csv"`
	SpelmanCSV     string   `mapstructure:"spelman_csv"`
	OtherResCSVs   []string `mapstructure:"other_res_csvs"`
	ResCollegeTopN int      `mapstructure:"res_college_top_n"`
	OutputPath     string   `mapstructure:"output_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("DRAW_DASH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("snapshot.source", "./data/snapshot.json")
	v.SetDefault("snapshot.timeout", "30s")

	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("telegram.enabled", false)

	v.SetDefault("storage.db_path", "./data/draw-history.db")
	v.SetDefault("storage.history_limit", 50)

	v.SetDefault("estimator.res_college_top_n", 50)
	v.SetDefault("estimator.output_path", "./data/snapshot.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Snapshot.Source == "" {
		return fmt.Errorf("snapshot.source is required")
	}
	if c.Snapshot.Timeout <= 0 {
		return fmt.Errorf("snapshot.timeout must be positive")
	}

	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}
	if c.Storage.HistoryLimit < 1 {
		return fmt.Errorf("storage.history_limit must be at least 1")
	}

	if c.Estimator.ResCollegeTopN < 0 {
		return fmt.Errorf("estimator.res_college_top_n must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
