package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck progress and success rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.deck.Progress()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Day:          %d\n", d.deck.Day())
		fmt.Fprintf(out, "Cards:        %d\n", p.TotalCards)
		fmt.Fprintf(out, "Trials:       %d\n", len(d.deck.History()))
		fmt.Fprintf(out, "Success rate: %.0f%%\n", p.SuccessRate*100)

		hi := leitner.MaxBucket
		if lo, top, ok := leitner.BucketRange(leitner.ToBucketSets(d.deck.Snapshot())); ok {
			fmt.Fprintf(out, "Buckets in use: %d–%d\n", lo, top)
			hi = max(hi, top)
		}
		fmt.Fprintln(out)

		for b := 0; b <= hi; b++ {
			n := p.CardsInBuckets[b]
			var pct float64
			if p.TotalCards > 0 {
				pct = float64(n) / float64(p.TotalCards)
			}
			bar := components.NewProgressBar(fmt.Sprintf("Bucket %d  %3d", b, n), pct, true, 30)
			bar.Fill = theme.Bucket(b)
			fmt.Fprintln(out, bar.View())
		}
		return nil
	},
}
