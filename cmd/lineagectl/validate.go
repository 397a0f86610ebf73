package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lineaged/internal/codec"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <file.ged>",
	Short: "Validate a GEDCOM file without importing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		report := codec.NewDecoder().Validate(f)

		if validateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("People:   %d\n", report.PeopleCount)
		fmt.Printf("Families: %d\n", report.FamiliesCount)
		for _, issue := range report.Errors {
			fmt.Printf("error: line %d: %s\n", issue.Line, issue.Message)
		}
		for _, issue := range report.Warnings {
			fmt.Printf("warning: line %d: %s\n", issue.Line, issue.Message)
		}
		if !report.Ready {
			return fmt.Errorf("file is not importable")
		}
		fmt.Println("Ready to import")
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(validateCmd)
}
