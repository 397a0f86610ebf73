package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lineaged/internal/repository/sqlite"
	"lineaged/internal/service"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "lineagectl",
	Short: "Family-tree GEDCOM import, export, and validation",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the lineaged database")
}

// resolveDBPath picks the database path: an explicit --db flag wins, the
// LINEAGED_DB environment variable is the fallback default.
func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("LINEAGED_DB"); env != "" {
		return env
	}
	return "./lineaged.db"
}

// openService opens the database and wires up a tree service
func openService() (*service.TreeService, *sqlite.Repository, error) {
	repo, err := sqlite.New(resolveDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	return service.NewTreeService(repo, service.NewEventBus()), repo, nil
}
