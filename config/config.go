package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	appName = "mailgallery"

	// KeyringService is the keyring service name under which consumer
	// secrets are stored, keyed by consumer key.
	KeyringService = appName
)

// Load loads the configuration from file, the environment and the keyring
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
		v.AddConfigPath("/etc/" + appName + "/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without a file the environment may still supply everything
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ResolveSecret(&cfg.ContextIO); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Context.IO defaults
	v.SetDefault("contextio.consumer_key", "")
	v.SetDefault("contextio.consumer_secret", "")
	v.SetDefault("contextio.endpoint", "api.context.io")
	v.SetDefault("contextio.api_version", "1.1")
	v.SetDefault("contextio.use_ssl", true)
	v.SetDefault("contextio.insecure_skip_verify", false)
	v.SetDefault("contextio.auth_header", false)
	v.SetDefault("contextio.save_headers", false)
	v.SetDefault("contextio.timeout", 30*time.Second)

	// Gallery defaults
	v.SetDefault("gallery.account", "")
	v.SetDefault("gallery.page_size", 10)
	v.SetDefault("gallery.limit", 100)
	v.SetDefault("gallery.download_dir", filepath.Join(xdg.DataHome, appName, "photos"))
	v.SetDefault("gallery.concurrency", 4)

	// Filter defaults
	v.SetDefault("filter.default_expression", "isImage()")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// ResolveSecret fills an empty consumer secret from the OS keyring.
func ResolveSecret(cfg *ContextIOConfig) error {
	if cfg.ConsumerSecret != "" || cfg.ConsumerKey == "" {
		return nil
	}

	secret, err := keyring.Get(KeyringService, cfg.ConsumerKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read consumer secret from keyring: %w", err)
	}
	cfg.ConsumerSecret = secret
	return nil
}

// StoreSecret saves a consumer secret in the OS keyring.
func StoreSecret(consumerKey, secret string) error {
	if consumerKey == "" {
		return fmt.Errorf("consumer key is required")
	}
	if secret == "" {
		return fmt.Errorf("secret must not be empty")
	}
	if err := keyring.Set(KeyringService, consumerKey, secret); err != nil {
		return fmt.Errorf("failed to store consumer secret in keyring: %w", err)
	}
	return nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.ContextIO.ConsumerKey == "" {
		return fmt.Errorf("contextio.consumer_key is required")
	}

	if cfg.ContextIO.ConsumerSecret == "" {
		return fmt.Errorf("contextio.consumer_secret must be set in config, environment or keyring")
	}

	if cfg.ContextIO.Endpoint == "" {
		return fmt.Errorf("contextio.endpoint is required")
	}

	if cfg.Gallery.PageSize <= 0 {
		return fmt.Errorf("invalid gallery.page_size: %d (must be positive)", cfg.Gallery.PageSize)
	}

	if cfg.Gallery.Concurrency <= 0 {
		return fmt.Errorf("invalid gallery.concurrency: %d (must be positive)", cfg.Gallery.Concurrency)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
