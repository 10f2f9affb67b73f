package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the distinct tags in the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		for _, t := range d.deck.Tags() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}
