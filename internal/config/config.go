// Package config loads todo settings from an optional YAML file and TODO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Service ServiceConfig `mapstructure:"service"`
	Web     WebConfig     `mapstructure:"web"`
	UI      UIConfig      `mapstructure:"ui"`
}

// ServiceConfig points at the remote todo service.
type ServiceConfig struct {
	BaseAddress string `mapstructure:"base_address"`
	// Context is "server" or "browser".
	Context string `mapstructure:"context"`
	// Encoding is "binary" or "text".
	Encoding string `mapstructure:"encoding"`
}

type WebConfig struct {
	Listen string `mapstructure:"listen"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs     []string       `mapstructure:"outputs"`
	Rotation    RotationConfig `mapstructure:"rotation"`
	Development bool           `mapstructure:"development"`
}

// RotationConfig applies to file outputs only.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				Filename:   "logs/todo.log",
				MaxSizeMB:  20,
				MaxBackups: 3,
				MaxAgeDays: 14,
				Compress:   true,
			},
		},
		Service: ServiceConfig{
			BaseAddress: "http://localhost:50051",
			Context:     "server",
			Encoding:    "binary",
		},
		Web: WebConfig{Listen: ":8080"},
		UI:  UIConfig{Theme: "classic"},
	}
}

// Load reads path when given, otherwise looks for todo.yaml in the working
// directory and in $HOME/.todo. A missing file is not an error.
// Environment variables use the prefix TODO with "." replaced by "_",
// e.g. TODO_SERVICE_BASE_ADDRESS.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
	v.SetDefault("service.base_address", cfg.Service.BaseAddress)
	v.SetDefault("service.context", cfg.Service.Context)
	v.SetDefault("service.encoding", cfg.Service.Encoding)
	v.SetDefault("web.listen", cfg.Web.Listen)
	v.SetDefault("ui.theme", cfg.UI.Theme)

	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("todo")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".todo"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	c.Service.BaseAddress = strings.TrimSpace(c.Service.BaseAddress)
	if c.Service.BaseAddress == "" {
		return errors.New("service.base_address is required")
	}
	c.Service.Context = strings.ToLower(strings.TrimSpace(c.Service.Context))
	c.Service.Encoding = strings.ToLower(strings.TrimSpace(c.Service.Encoding))
	return nil
}
