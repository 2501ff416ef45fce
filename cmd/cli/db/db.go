package db

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"interviewsim/internal/sqlite"
)

var Group = &cobra.Group{
	ID:    "db",
	Title: "Database operations",
}

func databaseURL() string {
	if url, ok := os.LookupEnv("INTERVIEWSIM_SQLITE_URL"); ok {
		return url
	}
	return "./interviewsim.sqlite"
}

var Reinit = &cobra.Command{
	Use:     "reinit",
	GroupID: "db",
	Short:   "Reinitialise the database",
	Long:    `Drops all application tables and recreates them from the schema. All data is lost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		database, err := sqlite.NewDatabase(ctx, databaseURL())
		if err != nil {
			return err
		}
		defer func() {
			_ = database.Close()
		}()

		if err = database.Reinitialise(ctx); err != nil {
			return err
		}
		fmt.Println("Database reinitialised.")
		return nil
	},
}

var Check = &cobra.Command{
	Use:     "check",
	GroupID: "db",
	Short:   "Check database connectivity",
	Long:    `Connects to the database and lists the application tables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		database, err := sqlite.NewDatabase(ctx, databaseURL())
		if err != nil {
			return err
		}
		defer func() {
			_ = database.Close()
		}()

		tables, err := database.Tables(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Connected to %s\n", databaseURL())
		for _, table := range tables {
			fmt.Printf("  %s\n", table)
		}
		return nil
	},
}
