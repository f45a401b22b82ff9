package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tallyctl",
	Short: "Build split reports from a folder file",
	Long: `tallyctl renders the split reports and spreadsheet exports the server
produces, but from a JSON folder file on disk. Useful for checking a
split without standing up the server.

A folder file is a JSON array of receipts with their assigned orders:

  [
    {
      "receipt": {"name": "Cafe", "date": "01/01/2025", "discount": 10},
      "orders": [
        {"name": "Soup", "price": 18, "consumers": ["Alice"]}
      ]
    }
  ]`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(logging.Setup)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadFolder reads a folder file into memory.
func loadFolder(path string) ([]models.ReceiptWithSplitOrders, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading folder file: %w", err)
	}
	var folder []models.ReceiptWithSplitOrders
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("parsing folder file: %w", err)
	}
	return folder, nil
}
