package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/report"
)

var (
	folderFile   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a split report from a folder file",
	Long: `Render a split report to stdout.

Formats:
  folder  one line per receipt per consumer, with grand totals (default)
  short   receipt legend plus one total line per consumer
  long    full per-receipt breakdown for every consumer
  all     the multi-consumer report for a single receipt; the folder
          file must contain exactly one receipt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := loadFolder(folderFile)
		if err != nil {
			return err
		}

		text, err := renderReport(folder, reportFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func renderReport(folder []models.ReceiptWithSplitOrders, format string) (string, error) {
	switch format {
	case "folder":
		return report.ForFolder(folder)
	case "short":
		return report.ForFolderShort(folder)
	case "long":
		return report.ForFolderLong(folder)
	case "all":
		if len(folder) != 1 {
			return "", fmt.Errorf("format %q needs exactly one receipt, file has %d", format, len(folder))
		}
		return report.ForAllConsumers(folder[0].Receipt, folder[0].Orders)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func init() {
	reportCmd.Flags().StringVarP(&folderFile, "file", "f", "", "Path to the folder file (required)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "folder", "Report format: folder, short, long or all")
	_ = reportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(reportCmd)
}
