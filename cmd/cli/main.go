package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"interviewsim/cmd/cli/bank"
	"interviewsim/cmd/cli/db"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(db.Group)
	rootCmd.AddCommand(db.Reinit, db.Check)
	rootCmd.AddGroup(bank.Group)
	rootCmd.AddCommand(bank.Lint)
}

var rootCmd = &cobra.Command{
	Use:  "interviewsim-cli",
	Long: `Command line utilities for InterviewSim`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
