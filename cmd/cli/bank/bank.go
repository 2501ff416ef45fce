package bank

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	qbank "interviewsim/internal/bank"
)

var Group = &cobra.Group{
	ID:    "bank",
	Title: "Question bank operations",
}

var Lint = &cobra.Command{
	Use:     "lint [file]",
	GroupID: "bank",
	Short:   "Validate a question file",
	Long:    `Loads a question file and reports its question and category counts.`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := "./questions.csv"
		if envPath, ok := os.LookupEnv("INTERVIEWSIM_QUESTION_FILE"); ok {
			path = envPath
		}
		if len(args) == 1 {
			path = args[0]
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		questionBank := qbank.New(path, logger)
		if err := questionBank.Load(); err != nil {
			return err
		}

		categories := questionBank.Categories()
		// The first entry is the synthetic catch-all category.
		fmt.Printf("%s: %d questions in %d categories\n", path, questionBank.Size(), len(categories)-1)
		for _, category := range categories[1:] {
			fmt.Printf("  %s\n", category)
		}
		return nil
	},
}
