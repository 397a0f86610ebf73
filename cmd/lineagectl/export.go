package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportYAML bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database as GEDCOM (or YAML)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if exportYAML {
			err = svc.ExportYAML(cmd.Context(), out)
		} else {
			err = svc.ExportGEDCOM(cmd.Context(), out)
		}
		if err != nil {
			return err
		}

		if exportOut != "" {
			fmt.Fprintf(os.Stderr, "Exported to %s\n", exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportYAML, "yaml", false, "Export as YAML instead of GEDCOM")
	rootCmd.AddCommand(exportCmd)
}
