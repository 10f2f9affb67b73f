package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show or advance the simulated day",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Day %d\n", d.deck.Day())
		return nil
	},
}

var dayNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next day",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		if _, err := d.deck.AdvanceDay(cmd.Context()); err != nil {
			return err
		}
		day, cards, err := d.deck.DueCards()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Day %d: %d card(s) due\n", day, len(cards))
		return nil
	},
}

func init() {
	dayCmd.AddCommand(dayNextCmd)
}
