package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallyup/tallyup/internal/export"
)

var (
	exportFile string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a folder split as an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := loadFolder(exportFile)
		if err != nil {
			return err
		}

		data, err := export.FolderWorkbook(folder)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", exportOut, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Path to the folder file (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "split.xlsx", "Output workbook path")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}
