package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the cards due today",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		day, cards, err := d.deck.DueCards()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(cards) == 0 {
			fmt.Fprintf(out, "Day %d: nothing to review.\n", day)
			return nil
		}

		fmt.Fprintf(out, "Day %d: %d card(s) due\n", day, len(cards))
		fmt.Fprintf(out, "%-6s  %-32s  %s\n", "Bucket", "Front", "Tags")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, c := range cards {
			b, _ := d.deck.CardBucket(c.ID)
			fmt.Fprintf(out, "%-6d  %-32s  %s\n", b, clip(c.Front, 32), strings.Join(c.Tags, ", "))
		}
		return nil
	},
}

// clip shortens s to n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
