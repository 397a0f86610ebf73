package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.ged>",
	Short: "Import a GEDCOM file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		result, err := svc.ImportGEDCOM(cmd.Context(), data)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d people and %d families\n", result.PeopleCreated, result.FamiliesCreated)
		for _, issue := range result.Warnings {
			fmt.Printf("warning: line %d: %s\n", issue.Line, issue.Message)
		}
		if result.Incomplete {
			fmt.Println("warning: file ended without TRLR, import may be incomplete")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
