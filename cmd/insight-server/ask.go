package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	answerquestion "supplychain-insights/internal/workers/ai-conversation/answer-question"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question and print the JSON response",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("compact", false, "print JSON on a single line")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	compact, _ := cmd.Flags().GetBool("compact")

	ctx := context.Background()
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !compact {
		enc.SetIndent("", "  ")
	}

	resp, err := a.answerer.Execute(ctx, &answerquestion.Input{Question: strings.Join(args, " ")})
	if err != nil {
		_ = json.NewEncoder(os.Stderr).Encode(a.answerer.ErrorResponse(err))
		return err
	}
	return enc.Encode(resp)
}
