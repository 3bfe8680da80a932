package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [id]...",
	Short: "Read one or more documents",
	Long: `Get prints the decoded payload of a document.

With several ids the documents are fetched in batches of up to 100 ids and
printed as an object keyed by id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			doc, err := service.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}
			return printResult(cmd.OutOrStdout(), doc.Data)
		}

		docs, err := service.GetDocuments(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("reading documents: %w", err)
		}

		out := make(map[string]any, len(docs))
		for id, doc := range docs {
			out[id] = doc.Data
		}
		return printResult(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
