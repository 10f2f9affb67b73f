package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent practice trials",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		records := d.deck.History()
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No practice recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-28s  %-5s  %-7s  %s\n", "Timestamp", "Front", "Diff", "Buckets", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		// Newest first.
		shown := 0
		for i := len(records) - 1; i >= 0; i-- {
			if limit > 0 && shown == limit {
				break
			}
			r := records[i]
			ok := "✓"
			if !r.Correct {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-19s  %-28s  %-5s  %d → %d    %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(r.Front, 28),
				r.Difficulty,
				r.PreviousBucket, r.NewBucket,
				ok,
			)
			shown++
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of trials to show (0 for all)")
}
