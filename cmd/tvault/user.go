package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user [access-token]",
	Short: "Show the user owning an access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}

		res, err := service.GetUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("looking up user: %w", err)
		}
		if !res.OK() {
			return fmt.Errorf("user lookup failed: %s", res.Result)
		}
		return printResult(cmd.OutOrStdout(), res.User)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
