package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured service state",
	Long:  `Status prints the adapter state (vault, schemas, batch size, requests) without contacting the API.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), service.State())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
