package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document from the vault",
	Long:  `Delete permanently removes a document from the vault.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		service, err := openService()
		if err != nil {
			return err
		}

		if err := service.DeleteDocument(cmd.Context(), id); err != nil {
			return fmt.Errorf("deleting document: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Document deleted: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
