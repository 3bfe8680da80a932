package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	saveID   string
	saveData string
	saveFile string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a document",
	Long: `Save stores a JSON payload in the vault.

Without --id a new document is created and its id printed. With --id the
existing document is replaced. The payload comes from --data, --file, or
standard input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(cmd, saveData, saveFile)
		if err != nil {
			return err
		}

		service, err := openService()
		if err != nil {
			return err
		}

		id, err := service.SaveDocument(cmd.Context(), payload, saveID)
		if err != nil {
			return fmt.Errorf("saving document: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveID, "id", "", "Document id to update (default: create a new document)")
	saveCmd.Flags().StringVarP(&saveData, "data", "d", "", "JSON payload")
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "Read the JSON payload from a file ('-' for stdin)")
	rootCmd.AddCommand(saveCmd)
}
