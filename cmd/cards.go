package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/flashcard"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the card catalogue",
}

var cardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to bucket 0",
	Example: `  leitner cards add --front "Capital of Japan" --back Tokyo --hint "Largest metro area" --tags geo,asia
  leitner cards add --front "H2O" --back water --suggest-hint`,
	RunE: func(cmd *cobra.Command, args []string) error {
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		tags, _ := cmd.Flags().GetString("tags")
		suggest, _ := cmd.Flags().GetBool("suggest-hint")

		in := deck.NewCardInput{
			Front:       front,
			Back:        back,
			Tags:        flashcard.ParseTags(tags),
			SuggestHint: suggest,
		}
		if cmd.Flags().Changed("hint") {
			hint, _ := cmd.Flags().GetString("hint")
			in.Hint = &hint
		}

		d, err := openDeps(cmd, depsOptions{hints: suggest})
		if err != nil {
			return err
		}
		defer d.Close()

		card, err := d.deck.AddCard(cmd.Context(), in)
		switch {
		case errors.Is(err, deck.ErrDuplicateCard):
			return fmt.Errorf("a card with front %q and back %q already exists", front, back)
		case err != nil:
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %s to bucket 0\n", card.ID)
		if card.Hint != nil && in.Hint == nil {
			fmt.Fprintf(out, "Suggested hint: %s\n", *card.Hint)
		}
		return nil
	},
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cards with their bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		cards := d.deck.Cards()
		out := cmd.OutOrStdout()
		if len(cards) == 0 {
			fmt.Fprintln(out, "No cards yet. Add one with `leitner cards add`.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-28s  %-20s  %-4s  %s\n", "Bucket", "Front", "Back", "Hint", "Tags")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, c := range cards {
			if tag != "" && !c.HasTag(tag) {
				continue
			}
			b, _ := d.deck.CardBucket(c.ID)
			hint := "-"
			if c.Hint != nil {
				hint = "yes"
			}
			fmt.Fprintf(out, "%-6d  %-28s  %-20s  %-4s  %s\n",
				b, clip(c.Front, 28), clip(c.Back, 20), hint, strings.Join(c.Tags, ", "))
		}
		return nil
	},
}

var cardsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import cards from a YAML deck file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := deck.LoadSeedFile(args[0])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		added, skipped, err := d.deck.Import(cmd.Context(), seed)
		if err != nil {
			return fmt.Errorf("import stopped after %d card(s): %w", added, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d card(s), skipped %d duplicate(s)\n", added, skipped)
		return nil
	},
}

var cardsExportCmd = &cobra.Command{
	Use:   "export [file.yaml]",
	Short: "Write all cards as a YAML deck file (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		seed := deck.ExportSeed(d.deck.Cards())
		if len(args) == 0 {
			return deck.WriteSeed(cmd.OutOrStdout(), seed)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		if err := deck.WriteSeed(f, seed); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	cardsAddCmd.Flags().String("front", "", "Card front")
	cardsAddCmd.Flags().String("back", "", "Card back")
	cardsAddCmd.Flags().String("hint", "", "Optional hint")
	cardsAddCmd.Flags().String("tags", "", "Comma-separated tags")
	cardsAddCmd.Flags().Bool("suggest-hint", false, "Ask the configured LLM for a hint when --hint is not given")
	_ = cardsAddCmd.MarkFlagRequired("front")
	_ = cardsAddCmd.MarkFlagRequired("back")

	cardsListCmd.Flags().String("tag", "", "Only list cards with this tag")

	cardsCmd.AddCommand(cardsAddCmd)
	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsImportCmd)
	cardsCmd.AddCommand(cardsExportCmd)
}
