package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	ContextIO ContextIOConfig `mapstructure:"contextio"`
	Gallery   GalleryConfig   `mapstructure:"gallery"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ContextIOConfig holds Context.IO API connection details
type ContextIOConfig struct {
	ConsumerKey        string        `mapstructure:"consumer_key"`
	ConsumerSecret     string        `mapstructure:"consumer_secret"`
	Endpoint           string        `mapstructure:"endpoint"`
	APIVersion         string        `mapstructure:"api_version"`
	UseSSL             bool          `mapstructure:"use_ssl"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	AuthHeader         bool          `mapstructure:"auth_header"`
	SaveHeaders        bool          `mapstructure:"save_headers"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// GalleryConfig contains photo listing and download settings
type GalleryConfig struct {
	Account     string `mapstructure:"account"`
	PageSize    int    `mapstructure:"page_size"`
	Limit       int    `mapstructure:"limit"`
	DownloadDir string `mapstructure:"download_dir"`
	Concurrency int    `mapstructure:"concurrency"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]FilterPreset `mapstructure:"presets"`
}

// FilterPreset is a named filter expression
type FilterPreset struct {
	Description string `mapstructure:"description"`
	Expression  string `mapstructure:"expression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
