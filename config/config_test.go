package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func validConfig() *Config {
	return &Config{
		ContextIO: ContextIOConfig{
			ConsumerKey:    "key",
			ConsumerSecret: "secret",
			Endpoint:       "api.context.io",
		},
		Gallery: GalleryConfig{
			PageSize:    10,
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing consumer key",
			mutate:  func(c *Config) { c.ContextIO.ConsumerKey = "" },
			wantErr: "contextio.consumer_key is required",
		},
		{
			name:    "missing consumer secret",
			mutate:  func(c *Config) { c.ContextIO.ConsumerSecret = "" },
			wantErr: "contextio.consumer_secret",
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.ContextIO.Endpoint = "" },
			wantErr: "contextio.endpoint is required",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Gallery.PageSize = 0 },
			wantErr: "invalid gallery.page_size: 0",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Gallery.Concurrency = -1 },
			wantErr: "invalid gallery.concurrency: -1",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	keyring.MockInit()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `contextio:
  consumer_key: abc
  consumer_secret: def
  use_ssl: false
  timeout: 5s
gallery:
  account: me@example.com
  page_size: 25
filter:
  presets:
    large:
      description: Large pictures
      expression: isImage() and Size > 1000000
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.ContextIO.ConsumerKey)
	assert.Equal(t, "def", cfg.ContextIO.ConsumerSecret)
	assert.False(t, cfg.ContextIO.UseSSL)
	assert.Equal(t, 5*time.Second, cfg.ContextIO.Timeout)
	assert.Equal(t, "api.context.io", cfg.ContextIO.Endpoint)
	assert.Equal(t, "1.1", cfg.ContextIO.APIVersion)

	assert.Equal(t, "me@example.com", cfg.Gallery.Account)
	assert.Equal(t, 25, cfg.Gallery.PageSize)
	assert.Equal(t, 4, cfg.Gallery.Concurrency)
	assert.Equal(t, 100, cfg.Gallery.Limit)
	assert.NotEmpty(t, cfg.Gallery.DownloadDir)

	assert.Equal(t, "isImage()", cfg.Filter.DefaultExpression)
	require.Contains(t, cfg.Filter.Presets, "large")
	assert.Equal(t, "isImage() and Size > 1000000", cfg.Filter.Presets["large"].Expression)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	keyring.MockInit()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contextio:\n  consumer_key: abc\n  consumer_secret: def\n"), 0o600))

	t.Setenv("MAILGALLERY_CONTEXTIO_CONSUMER_SECRET", "from-env")
	t.Setenv("MAILGALLERY_GALLERY_PAGE_SIZE", "50")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ContextIO.ConsumerSecret)
	assert.Equal(t, 50, cfg.Gallery.PageSize)
}

func TestLoadSecretFromKeyring(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, StoreSecret("abc", "kept-in-keyring"))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contextio:\n  consumer_key: abc\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kept-in-keyring", cfg.ContextIO.ConsumerSecret)
}

func TestLoadMissingSecret(t *testing.T) {
	keyring.MockInit()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contextio:\n  consumer_key: nosecret\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer_secret")
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolveSecret(t *testing.T) {
	keyring.MockInit()

	t.Run("existing secret wins", func(t *testing.T) {
		require.NoError(t, StoreSecret("k1", "stored"))
		cfg := ContextIOConfig{ConsumerKey: "k1", ConsumerSecret: "inline"}
		require.NoError(t, ResolveSecret(&cfg))
		assert.Equal(t, "inline", cfg.ConsumerSecret)
	})

	t.Run("not found leaves secret empty", func(t *testing.T) {
		cfg := ContextIOConfig{ConsumerKey: "unknown"}
		require.NoError(t, ResolveSecret(&cfg))
		assert.Empty(t, cfg.ConsumerSecret)
	})

	t.Run("no key skips lookup", func(t *testing.T) {
		cfg := ContextIOConfig{}
		require.NoError(t, ResolveSecret(&cfg))
		assert.Empty(t, cfg.ConsumerSecret)
	})
}

func TestStoreSecretValidation(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, StoreSecret("", "x"))
	assert.Error(t, StoreSecret("k", ""))
}
