package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/storage/sqlite"
)

var rootCmd = &cobra.Command{
	Use:           "mokki",
	Short:         "Split the food bill of a cottage trip by who ate what",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the trips database (default $MOKKI_DB or ~/.mokki/trips.db)")
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(personCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command and prints any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), Error("error: "+err.Error()))
	}
	return err
}

// defaultDBPath is $MOKKI_DB, or ~/.mokki/trips.db.
func defaultDBPath() string {
	if p := os.Getenv("MOKKI_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mokki", "trips.db")
	}
	return filepath.Join(home, ".mokki", "trips.db")
}

// withStore opens the database named by --db for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.TripStore) error) error {
	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Debug("Opened trips database", "path", dbPath)

	return fn(cmd.Context(), store)
}
