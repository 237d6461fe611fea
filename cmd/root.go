package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/mailgallery/config"
	"github.com/s0up4200/mailgallery/contextio"
	"github.com/s0up4200/mailgallery/filter"
	"github.com/s0up4200/mailgallery/gallery"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *contextio.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mailgallery",
	Short: "Browse and download the pictures attached to a Context.IO mailbox",
	Long: `mailgallery is a CLI for the Context.IO 1.1 API. It signs every request
with OAuth 1.0a, lists image attachments of a mailbox page by page and
downloads them to a local directory. Any other API endpoint can be invoked
directly with the call command.`,
	SilenceUsage: true,
}

// SetVersion records build information for the version and update commands.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadDotEnv exports variables from ./.env before viper reads the environment
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = newClient(cfg.ContextIO, logger)
	if err != nil {
		return fmt.Errorf("failed to create Context.IO client: %w", err)
	}

	filters = filter.NewManager()
	presets := make(map[string]string, len(cfg.Filter.Presets))
	for name, p := range cfg.Filter.Presets {
		presets[name] = p.Expression
	}
	if err := filters.RegisterFilters(presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// newClient maps the contextio configuration section onto client options
func newClient(c config.ContextIOConfig, logger zerolog.Logger) (*contextio.Client, error) {
	opts := []contextio.Option{
		contextio.WithEndpoint(c.Endpoint),
		contextio.WithAPIVersion(c.APIVersion),
		contextio.WithSSL(c.UseSSL),
		contextio.WithAuthorizationHeader(c.AuthHeader),
		contextio.WithHeaderCapture(c.SaveHeaders),
		contextio.WithInsecureSkipVerify(c.InsecureSkipVerify),
		contextio.WithUserAgent("mailgallery/" + version),
	}
	if c.Timeout > 0 {
		opts = append(opts, contextio.WithTimeout(c.Timeout))
	}

	if c.InsecureSkipVerify {
		logger.Warn().Msg("TLS certificate verification is disabled")
	}

	return contextio.NewClient(c.ConsumerKey, c.ConsumerSecret, logger, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// accountOrDefault falls back to gallery.account from the configuration
func accountOrDefault(account string) (string, error) {
	if account != "" {
		return account, nil
	}
	if cfg.Gallery.Account != "" {
		return cfg.Gallery.Account, nil
	}
	return "", fmt.Errorf("no account given: use --account or set gallery.account")
}

// newGallery builds the gallery service for the selected filter
func newGallery(filterExpr, preset string) (*gallery.Service, error) {
	match, err := filters.Resolve(filterExpr, preset, cfg.Filter.DefaultExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	return gallery.NewService(client, logger,
		gallery.WithFilter(match),
		gallery.WithLimit(cfg.Gallery.Limit),
		gallery.WithConcurrency(cfg.Gallery.Concurrency),
	), nil
}
