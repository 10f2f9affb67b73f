package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "leitner",
	Short: "Spaced-repetition flashcards",
	Long:  "leitner schedules flashcard reviews with a Modified-Leitner system and serves the deck over a CLI, a terminal UI and an HTTP API.",
	// Without a subcommand, start the terminal review session.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEITNER_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured store path (which LEITNER_DB sets), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
