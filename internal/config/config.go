package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

// Config holds every setting of the planner, read from app.env and the environment.
type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	ClientOrigin  string `mapstructure:"CLIENT_ORIGIN" validate:"omitempty,url"`
	JWTSecret     string `mapstructure:"JWT_SECRET" validate:"required_without=DevMode"`
	RemoteBaseURL string `mapstructure:"REMOTE_BASE_URL" validate:"required,url"`
	RemoteToken   string `mapstructure:"REMOTE_TOKEN" validate:"required"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	DevMode       bool   `mapstructure:"DEV_MODE"`
}

var keys = []string{
	"SERVER_PORT", "CLIENT_ORIGIN", "JWT_SECRET", "REMOTE_BASE_URL", "REMOTE_TOKEN", "LOG_LEVEL", "DEV_MODE",
}

// LoadConfig reads app.env from path when it exists, then lets environment
// variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEV_MODE", false)

	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config.LoadConfig bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.LoadConfig read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig unmarshal: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig validate: %w", err)
	}
	return &cfg, nil
}

// Level maps LogLevel onto the logger's levels.
func (c *Config) Level() log.Lvl {
	switch c.LogLevel {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	}
	return log.INFO
}
