package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tvault-go/tvault"
	"github.com/tvault-go/tvault/pkg/core"
)

var (
	sessionData string
	sessionFile string
	sessionSID  string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions stored in the vault",
	Long: `Sessions are documents carrying a "sid" field, looked up through the
search endpoint and stored under the session schema.`,
}

var sessionGetCmd = &cobra.Command{
	Use:   "get [sid]",
	Short: "Print a session by its session id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}

		sess, err := service.GetSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		if sess == nil {
			return fmt.Errorf("session %s: %w", args[0], core.ErrSessionNotFound)
		}
		return printResult(cmd.OutOrStdout(), sess)
	},
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a session",
	Long: `Save stores a session payload.

Without --sid a new session document is inserted as-is. With --sid the
session carrying that id is looked up and replaced; it must already exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(cmd, sessionData, sessionFile)
		if err != nil {
			return err
		}

		service, err := openService()
		if err != nil {
			return err
		}

		id, err := service.SaveSession(cmd.Context(), payload, sessionSID)
		if err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a session with a generated session id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := map[string]any{}
		if sessionData != "" || sessionFile != "" {
			payload, err := readPayload(cmd, sessionData, sessionFile)
			if err != nil {
				return err
			}
			m, ok := payload.(map[string]any)
			if !ok {
				return errors.New("session payload must be a JSON object")
			}
			values = m
		}

		service, err := openService()
		if err != nil {
			return err
		}

		store, err := tvault.NewSessionStore(service)
		if err != nil {
			return err
		}

		sid, err := store.Create(cmd.Context(), values)
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), sid)
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [sid]",
	Short: "Remove a session by its session id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}

		removed, err := service.RemoveSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("removing session: %w", err)
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "No session found: %s\n", args[0])
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session removed: %s\n", args[0])
		return nil
	},
}

func init() {
	sessionSaveCmd.Flags().StringVar(&sessionSID, "sid", "", "Session id to update (default: insert a new session)")
	for _, c := range []*cobra.Command{sessionSaveCmd, sessionNewCmd} {
		c.Flags().StringVarP(&sessionData, "data", "d", "", "JSON payload")
		c.Flags().StringVarP(&sessionFile, "file", "f", "", "Read the JSON payload from a file ('-' for stdin)")
	}

	sessionCmd.AddCommand(sessionGetCmd, sessionSaveCmd, sessionNewCmd, sessionRmCmd)
	rootCmd.AddCommand(sessionCmd)
}
