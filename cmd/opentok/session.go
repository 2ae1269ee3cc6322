package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/client"
)

// Session command group
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session operations",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a session",
	Long: `Creates a new session and prints its id.

Example:
  opentok session create --media-mode relayed
  opentok session create --archive-mode always --location 12.34.56.78`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaMode, _ := cmd.Flags().GetString("media-mode")
		archiveMode, _ := cmd.Flags().GetString("archive-mode")
		location, _ := cmd.Flags().GetString("location")
		e2ee, _ := cmd.Flags().GetBool("e2ee")

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		session, err := c.CreateSession(ctx, client.SessionOptions{
			MediaMode:   client.MediaMode(mediaMode),
			ArchiveMode: client.ArchiveMode(archiveMode),
			Location:    location,
			E2EE:        e2ee,
		})
		if err != nil {
			return describeError("failed to create session", err)
		}
		if session == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, session)
		}

		fmt.Fprintf(out, "Session ID: %s\n", session.SessionID)
		if session.CreateDt != "" {
			fmt.Fprintf(out, "  Created: %s\n", session.CreateDt)
		}
		return nil
	},
}

func init() {
	sessionCreateCmd.Flags().String("media-mode", "", "routed or relayed (default routed)")
	sessionCreateCmd.Flags().String("archive-mode", "", "manual or always")
	sessionCreateCmd.Flags().String("location", "", "IPv4 location hint for media server selection")
	sessionCreateCmd.Flags().Bool("e2ee", false, "Enable end-to-end encryption")

	sessionCmd.AddCommand(sessionCreateCmd)
}
