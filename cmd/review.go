package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/app"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review today's due cards in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, true)
	},
}

// runReview opens the deck and launches the TUI. reviewFirst skips the home
// menu and opens the review screen directly.
func runReview(cmd *cobra.Command, reviewFirst bool) error {
	d, err := openDeps(cmd, depsOptions{quiet: true})
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), d.deck, reviewFirst)
}
