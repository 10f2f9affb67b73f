package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Show the hint for a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		hint, err := d.deck.Hint(front, back)
		switch {
		case errors.Is(err, deck.ErrCardNotFound):
			return fmt.Errorf("no card with front %q and back %q", front, back)
		case errors.Is(err, leitner.ErrMissingHint):
			fmt.Fprintln(cmd.OutOrStdout(), "This card has no hint.")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hint)
		return nil
	},
}

func init() {
	hintCmd.Flags().String("front", "", "Card front")
	hintCmd.Flags().String("back", "", "Card back")
	_ = hintCmd.MarkFlagRequired("front")
	_ = hintCmd.MarkFlagRequired("back")
}
