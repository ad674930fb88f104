package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	SeedCategories  bool          `envconfig:"SEED_CATEGORIES"  default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		if err := config.Validate(); err != nil {
			logger.Fatalf("Invalid configuration: %v", err)
		}

		if !strings.HasPrefix(config.HTTPPort, ":") {
			config.HTTPPort = ":" + config.HTTPPort
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s, SeedCategories=%t, ShutdownTimeout=%s",
			config.HTTPPort, config.LogLevel, config.SeedCategories, config.ShutdownTimeout)
	})
	return &config
}

// Validate checks the configuration and returns an error listing every
// problem it finds.
func (c *Config) Validate() error {
	var errors []string

	// The port may be given with or without the leading colon.
	portStr := strings.TrimPrefix(c.HTTPPort, ":")
	if port, err := strconv.Atoi(portStr); err != nil {
		errors = append(errors, fmt.Sprintf("invalid HTTP port '%s': must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", port))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	} else if c.ShutdownTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at most 5 minutes", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
