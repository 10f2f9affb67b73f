package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM used for hint suggestions",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider by suggesting a hint for a sample card",
	RunE: func(cmd *cobra.Command, args []string) error {
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		discover, _ := cmd.Flags().GetBool("discover")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !cfg.LLM.Enabled() && discover {
			if cfg.LLM.Discover() {
				fmt.Fprintf(out, "Discovered %s API key in the environment.\n", cfg.LLM.Provider)
			}
		}

		svc, err := newSuggester(cmd, cfg, logger)
		if errors.Is(err, llm.ErrDisabled) {
			fmt.Fprintln(out, "No LLM provider configured. Set llm.provider or LEITNER_LLM_PROVIDER.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("build provider: %w", err)
		}

		fmt.Fprintf(out, "Provider:  %s\n", cfg.LLM.Provider)
		start := time.Now()
		hint, err := svc.SuggestHint(cmd.Context(), front, back, nil)
		if err != nil {
			return fmt.Errorf("suggest hint: %w", err)
		}
		fmt.Fprintf(out, "Card:      %s → %s\n", front, back)
		fmt.Fprintf(out, "Hint:      %s\n", hint)
		fmt.Fprintf(out, "Latency:   %dms\n", time.Since(start).Milliseconds())
		return nil
	},
}

func init() {
	llmCheckCmd.Flags().String("front", "What is the capital of France?", "Sample card front")
	llmCheckCmd.Flags().String("back", "Paris", "Sample card back")
	llmCheckCmd.Flags().Bool("discover", false, "Pick a provider from GEMINI/OPENAI/ANTHROPIC/OPENROUTER_API_KEY when none is configured")

	llmCmd.AddCommand(llmCheckCmd)
}
