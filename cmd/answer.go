package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record a practice trial for a card",
	Example: `  leitner answer --front "What is 2+2?" --back 4 --difficulty easy
  leitner answer --front "Capital of France" --back Paris --difficulty hard --correct=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		diffName, _ := cmd.Flags().GetString("difficulty")

		diff, err := leitner.ParseDifficulty(diffName)
		if err != nil {
			return fmt.Errorf("--difficulty: %w", err)
		}

		in := deck.AnswerInput{Front: front, Back: back, Difficulty: diff}
		if cmd.Flags().Changed("correct") {
			correct, _ := cmd.Flags().GetBool("correct")
			in.Correct = &correct
		}

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		rec, err := d.deck.Answer(cmd.Context(), in)
		if errors.Is(err, deck.ErrCardNotFound) {
			return fmt.Errorf("no card with front %q and back %q", front, back)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: bucket %d → %d\n", rec.Difficulty, rec.PreviousBucket, rec.NewBucket)
		return nil
	},
}

func init() {
	answerCmd.Flags().String("front", "", "Card front")
	answerCmd.Flags().String("back", "", "Card back")
	answerCmd.Flags().String("difficulty", "", "Wrong, Hard or Easy")
	answerCmd.Flags().Bool("correct", false, "Whether the answer was correct (defaults to difficulty == Easy)")
	for _, f := range []string{"front", "back", "difficulty"} {
		_ = answerCmd.MarkFlagRequired(f)
	}
}
