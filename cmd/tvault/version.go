package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvault-go/tvault"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tvault",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tvault version %s\n", strings.TrimSpace(tvault.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
