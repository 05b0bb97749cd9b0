package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var (
	verbose bool
	envFile string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockmentions",
	Short: "Count ticker mentions on social media and track their trends",
	Long: `stockmentions crawls a subreddit for stock ticker mentions, stores each
crawl as a versioned session, and turns accumulated sessions into trend
reports.

Sessions live under a storage area (local directory or S3 bucket) keyed by
their creation time, so listings are chronological by construction.

Quick Start:
  stockmentions crawl                  # run one crawl and store the session
  stockmentions sessions               # list stored sessions
  stockmentions show 2025-07-07/210032/
  stockmentions analyze                # combine all sessions into reports`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				internal.LogWarn("Failed to load env file %s: %v", envFile, err)
			}
		} else {
			// Best effort; a missing .env is fine
			_ = godotenv.Load()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load configuration from this env file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// normalizeSessionArg validates a session id argument and appends the
// trailing slash the key scheme requires
func normalizeSessionArg(arg string) (string, error) {
	sessionID := strings.TrimSpace(arg)
	if sessionID == "" {
		return "", fmt.Errorf("session id is required (e.g. 2025-07-07/210032/)")
	}
	if !strings.HasSuffix(sessionID, "/") {
		sessionID += "/"
	}
	return sessionID, nil
}

// newStore builds the storage backend selected by the configuration and
// wraps it in a SessionStore. The backend discriminator is resolved here,
// once; everything downstream depends only on the interface.
func newStore(cfg internal.Config) (*internal.SessionStore, error) {
	var backend internal.StorageBackend
	switch cfg.Storage.Type {
	case "local", "":
		backend = internal.NewLocalBackend(cfg.Storage.Root)
	case "s3":
		s3, err := internal.NewS3Backend(cfg.Storage)
		if err != nil {
			return nil, err
		}
		backend = s3
	default:
		return nil, fmt.Errorf("unknown storage type %q (expected local or s3)", cfg.Storage.Type)
	}

	cacheDir := cfg.Storage.CacheDir
	if cacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cacheDir = home + "/.stockmentions-cache"
		}
	}
	return internal.NewSessionStore(backend, cacheDir), nil
}
