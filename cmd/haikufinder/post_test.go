package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/utano/haikufinder/internal/config"
	"github.com/utano/haikufinder/internal/database"
	"github.com/utano/haikufinder/internal/model"
)

// seedCache creates a haiku cache in a temp directory with the given haikus.
func seedCache(t *testing.T, haikus ...model.Haiku) string {
	t.Helper()

	dbDir := t.TempDir()
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer db.Close()

	for _, h := range haikus {
		if _, err := db.InsertHaiku(context.Background(), h); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}
	}
	return dbDir
}

func seedHaiku(title string) model.Haiku {
	return model.Haiku{
		Title:      title,
		Artist:     "Band A",
		Lines:      [3]string{testFiveLine, testSevenLine, testFiveLine},
		Syllables:  [3]int{5, 7, 5},
		Confidence: model.ConfidenceHigh,
	}
}

// TestNewPostCmd tests the post command creation.
func TestNewPostCmd(t *testing.T) {
	t.Parallel()

	cmd := NewPostCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "post" {
			t.Errorf("expected use 'post', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"dry-run", "no-attribution", "timeout", "db-dir"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("has tweet alias", func(t *testing.T) {
		t.Parallel()
		if !cmd.HasAlias("tweet") {
			t.Error("expected 'tweet' alias")
		}
	})

	t.Run("dry-run defaults to true", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("dry-run")
		if flag.DefValue != "true" {
			t.Errorf("dry-run default = %q, want true", flag.DefValue)
		}
	})
}

// TestBuildPostConfig tests environment and flag handling.
func TestBuildPostConfig(t *testing.T) {
	t.Run("dry run on when environment is unset", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")

		cmd := NewPostCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildPostConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.DryRun {
			t.Error("DryRun should default to true")
		}
	})

	t.Run("explicit DRY_RUN=false disables dry run", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "false")

		cmd := NewPostCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildPostConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DryRun {
			t.Error("DryRun should be false with DRY_RUN=false")
		}
	})

	t.Run("dry-run flag overrides the environment", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "false")

		cmd := NewPostCmd()
		if err := cmd.ParseFlags([]string{"--dry-run=true"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildPostConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.DryRun {
			t.Error("explicit --dry-run=true should win over the environment")
		}
	})

	t.Run("credentials read from environment", func(t *testing.T) {
		t.Setenv(config.EnvAPIKey, "key")
		t.Setenv(config.EnvAPISecret, "secret")
		t.Setenv(config.EnvAccessToken, "token")
		t.Setenv(config.EnvAccessTokenSecret, "token-secret")

		cmd := NewPostCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildPostConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Credentials.Validate(); err != nil {
			t.Errorf("credentials should be complete: %v", err)
		}
	})
}

// TestRunPostCmd tests post execution.
func TestRunPostCmd(t *testing.T) {
	t.Run("dry run prints the status and marks the haiku used", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")
		dbDir := seedCache(t, seedHaiku("Song A"))

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"post", "--db-dir", dbDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "Dry run. Would post:") {
			t.Errorf("expected dry run banner, got %q", output)
		}
		if !strings.Contains(output, testFiveLine) {
			t.Errorf("expected haiku body in output, got %q", output)
		}
		if !strings.Contains(output, "— Song A by Band A") {
			t.Errorf("expected attribution line, got %q", output)
		}

		// The haiku must be marked used so the next run picks another.
		db, err := database.Open(dbDir, database.Options{})
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			t.Fatalf("failed to read stats: %v", err)
		}
		if stats.Posted != 1 || stats.Unposted != 0 {
			t.Errorf("stats = %+v, want the single haiku marked posted", stats)
		}
	})

	t.Run("no-attribution omits the credit line", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")
		dbDir := seedCache(t, seedHaiku("Song B"))

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"post", "--db-dir", dbDir, "--no-attribution"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.String(), "— Song B") {
			t.Errorf("attribution should be omitted, got %q", out.String())
		}
	})

	t.Run("tweet alias runs the post command", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")
		dbDir := seedCache(t, seedHaiku("Song D"))

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"tweet", "--db-dir", dbDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Dry run. Would post:") {
			t.Errorf("expected dry run banner, got %q", out.String())
		}
	})

	t.Run("empty cache is not an error", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")
		dbDir := seedCache(t)

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"post", "--db-dir", dbDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No unposted haikus") {
			t.Errorf("expected empty-cache message, got %q", out.String())
		}
	})

	t.Run("missing cache directs the user to scan", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "")

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"post", "--db-dir", filepath.Join(t.TempDir(), "empty")})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for missing cache")
		}
		if !strings.Contains(err.Error(), "haikufinder scan") {
			t.Errorf("error should mention scanning first: %v", err)
		}
	})

	t.Run("live mode without credentials is a configuration error", func(t *testing.T) {
		t.Setenv(config.EnvDryRun, "false")
		t.Setenv(config.EnvAPIKey, "")
		t.Setenv(config.EnvAPISecret, "")
		t.Setenv(config.EnvAccessToken, "")
		t.Setenv(config.EnvAccessTokenSecret, "")
		dbDir := seedCache(t, seedHaiku("Song C"))

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"post", "--db-dir", dbDir})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for missing credentials")
		}
		if !strings.Contains(err.Error(), "X_API_KEY") {
			t.Errorf("error should name the missing variables: %v", err)
		}
	})
}
