package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/utano/haikufinder/internal/config"
	"github.com/utano/haikufinder/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List cached haikus and their posting state",
		Long: `History lists the haikus in the local cache, newest first, showing which
have already been posted.

Examples:
  # List all cached haikus
  haikufinder history

  # Only haikus still waiting to be posted
  haikufinder history --unposted

  # Haikus from one artist
  haikufinder history --artist "The Example Band"

  # Aggregate counts only
  haikufinder history --stats

  # Machine-readable output
  haikufinder history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("artist", "a", "",
		"Only list haikus from this artist (exact match)")
	cmd.Flags().BoolP("unposted", "u", false,
		"Only list haikus that have not been posted yet")
	cmd.Flags().Bool("stats", false,
		"Print aggregate cache counts instead of listing haikus")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON instead of human-readable text")
	cmd.Flags().String("db-dir", "",
		"Directory for the haiku cache database (default: XDG data directory)")

	return cmd
}

// historyEntry is the JSON shape of one listed haiku.
type historyEntry struct {
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	Lines      [3]string  `json:"lines"`
	Confidence string     `json:"confidence"`
	CachedAt   time.Time  `json:"cached_at"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
	PostID     string     `json:"post_id,omitempty"`
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	artist, err := cmd.Flags().GetString("artist")
	if err != nil {
		return err
	}
	onlyUnposted, err := cmd.Flags().GetBool("unposted")
	if err != nil {
		return err
	}
	statsOnly, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	if statsOnly {
		stats, err := db.Stats(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]int{
				"total":    stats.Total,
				"posted":   stats.Posted,
				"unposted": stats.Unposted,
				"artists":  stats.Artists,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cached haikus: %d\n", stats.Total)
		fmt.Fprintf(cmd.OutOrStdout(), "Posted:        %d\n", stats.Posted)
		fmt.Fprintf(cmd.OutOrStdout(), "Unposted:      %d\n", stats.Unposted)
		fmt.Fprintf(cmd.OutOrStdout(), "Artists:       %d\n", stats.Artists)
		return nil
	}

	records, err := db.List(ctx, database.ListFilter{
		Artist:       artist,
		OnlyUnposted: onlyUnposted,
	})
	if err != nil {
		return err
	}

	if asJSON {
		entries := make([]historyEntry, len(records))
		for i, rec := range records {
			entries[i] = historyEntry{
				Title:      rec.Haiku.Title,
				Artist:     rec.Haiku.Artist,
				Lines:      rec.Haiku.Lines,
				Confidence: rec.Haiku.Confidence.String(),
				CachedAt:   rec.CreatedAt,
				PostedAt:   rec.PostedAt,
				PostID:     rec.PostID,
			}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached haikus match.")
		return nil
	}

	for _, rec := range records {
		state := "unposted"
		if rec.Posted() {
			state = "posted " + rec.PostedAt.Format("2006-01-02")
			if rec.PostID != "" {
				state += " (post ID " + rec.PostID + ")"
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s, confidence: %s]\n",
			rec.Haiku.DisplayName(), state, rec.Haiku.Confidence)
		for _, line := range rec.Haiku.Lines {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", line)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
