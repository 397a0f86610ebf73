package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entity counts for the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		stats, err := svc.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("People:   %d\n", stats.PeopleCount)
		fmt.Printf("Families: %d\n", stats.FamiliesCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
