package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/utano/haikufinder/internal/config"
	"github.com/utano/haikufinder/internal/database"
	"github.com/utano/haikufinder/internal/log"
	"github.com/utano/haikufinder/internal/xapi"
)

// NewPostCmd creates the post command.
func NewPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Aliases: []string{"tweet"},
		Short:   "Post one cached haiku to X",
		Long: `Post picks a random unposted haiku from the cache and publishes it to X.

Credentials are read from the environment (or a .env file in the working
directory): X_API_KEY, X_API_SECRET, X_ACCESS_TOKEN, X_ACCESS_TOKEN_SECRET.

Dry run is the default: the composed status is printed instead of posted,
and the haiku is still marked as used so the next run picks a fresh one.
Set DRY_RUN=false in the environment (or pass --dry-run=false) to post
for real.

Examples:
  # Preview what would be posted (dry run, the default)
  haikufinder post

  # Post for real
  DRY_RUN=false haikufinder post

  # Post without the "— Title by Artist" attribution line
  DRY_RUN=false haikufinder post --no-attribution`,
		Args: cobra.NoArgs,
		RunE: runPostCmd,
	}

	cmd.Flags().Bool("dry-run", true,
		"Print the status instead of posting (overrides the DRY_RUN environment variable)")
	cmd.Flags().Bool("no-attribution", false,
		"Omit the \"— Title by Artist\" line from the status")
	cmd.Flags().DurationP("timeout", "t", config.DefaultPostTimeout,
		"Timeout for posting API calls")
	cmd.Flags().String("db-dir", "",
		"Directory for the haiku cache database (default: XDG data directory)")

	return cmd
}

// runPostCmd executes the post command.
func runPostCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPostConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidatePost(); err != nil {
		return fmt.Errorf("configuration error: %w (set X_API_KEY, X_API_SECRET, X_ACCESS_TOKEN, and X_ACCESS_TOKEN_SECRET)", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runPost(ctx, cmd, cfg, logger)
}

// buildPostConfig creates a Config from flags and the environment.
func buildPostConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	// Environment first: credentials and the DRY_RUN opt-out.
	creds, dryRun := config.LoadEnvironment()
	cfg.Credentials = creds
	cfg.DryRun = dryRun

	// An explicit --dry-run flag wins over the environment.
	if cmd.Flags().Changed("dry-run") {
		flagDryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return nil, err
		}
		cfg.DryRun = flagDryRun
	}

	noAttribution, err := cmd.Flags().GetBool("no-attribution")
	if err != nil {
		return nil, err
	}
	cfg.IncludeAttribution = !noAttribution

	cfg.PostTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runPost picks, composes, and publishes one haiku.
func runPost(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	// Open the cache read-write but never create it: an empty cache means
	// the user has not scanned anything yet.
	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.PickUnposted(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No unposted haikus in the cache. Run 'haikufinder scan' with fresh lyrics.")
		return nil
	}

	status := xapi.ComposeStatus(rec.Haiku, cfg.IncludeAttribution, config.DefaultStatusLimit)

	logger.Info("selected haiku",
		"song", rec.Haiku.DisplayName(),
		"confidence", rec.Haiku.Confidence,
		"dryRun", cfg.DryRun,
	)

	var postID string
	if cfg.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run. Would post:")
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), status)
	} else {
		client := xapi.NewClient(cfg.Credentials, cfg.PostTimeout)

		username, err := client.VerifyCredentials(ctx)
		if err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}
		logger.Info("credentials verified", "username", username)

		postID, err = client.PostStatus(ctx, status)
		if err != nil {
			return fmt.Errorf("failed to post haiku: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Posted haiku from %s (post ID %s):\n\n%s\n",
			rec.Haiku.DisplayName(), postID, status)
	}

	// Mark the haiku used in both modes so repeated dry runs cycle through
	// the cache the same way live runs do.
	if err := db.MarkPosted(ctx, rec.Haiku.Signature(), postID); err != nil {
		return err
	}

	logger.Info("haiku marked as used",
		"song", rec.Haiku.DisplayName(),
		"postID", postID,
		"postedAt", time.Now().Format(time.RFC3339),
	)
	return nil
}
