package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/client"
)

var signalCmd = &cobra.Command{
	Use:   "signal SESSION_ID",
	Short: "Send a signal",
	Long: `Sends a signal to every client in a session, or to one connection.

Example:
  opentok signal SESSION_ID --type chat --data "hello"
  opentok signal SESSION_ID --connection CONNECTION_ID --data "just you"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signalType, _ := cmd.Flags().GetString("type")
		data, _ := cmd.Flags().GetString("data")
		connectionID, _ := cmd.Flags().GetString("connection")

		if data == "" {
			return fmt.Errorf("--data is required")
		}

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err = c.Signal(ctx, args[0], client.SignalPayload{Type: signalType, Data: data}, connectionID)
		switch {
		case err == nil:
		case errors.Is(err, client.ErrSignalConnection):
			return fmt.Errorf("connection '%s' is not in the session: %w", connectionID, err)
		case client.IsPayloadTooLarge(err):
			return fmt.Errorf("signal too large: %w", err)
		default:
			return describeError("failed to send signal", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), map[string]bool{"sent": true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signal sent")
		return nil
	},
}

func init() {
	signalCmd.Flags().String("type", "", "Signal type (max 128 bytes)")
	signalCmd.Flags().String("data", "", "Signal data (max 8 kB, required)")
	signalCmd.Flags().String("connection", "", "Only signal this connection")
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect SESSION_ID CONNECTION_ID",
	Short: "Force a client to leave a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := c.ForceDisconnect(ctx, args[0], args[1]); err != nil {
			if client.IsNotConnected(err) {
				return fmt.Errorf("connection '%s' is not in the session: %w", args[1], err)
			}
			return describeError("failed to disconnect", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), map[string]bool{"disconnected": true})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connection '%s' disconnected\n", args[1])
		return nil
	},
}

var dialCmd = &cobra.Command{
	Use:   "dial SESSION_ID SIP_URI",
	Short: "Dial a SIP endpoint into a session",
	Long: `Connects a SIP endpoint to a session. --token must be a client token
for the session.

Example:
  opentok dial SESSION_ID sip:user@sip.example.com --token T1==... --secure`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		secure, _ := cmd.Flags().GetBool("secure")
		from, _ := cmd.Flags().GetString("from")
		headers, _ := cmd.Flags().GetStringToString("header")
		user, _ := cmd.Flags().GetString("sip-user")
		password, _ := cmd.Flags().GetString("sip-password")

		if token == "" {
			return fmt.Errorf("--token is required")
		}

		opts := client.DialOptions{
			Secure: secure,
			From:   from,
		}
		if len(headers) > 0 {
			opts.Headers = headers
		}
		if user != "" {
			opts.Auth = &client.SipAuth{Username: user, Password: password}
		}

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		call, err := c.Dial(ctx, args[0], token, args[1], opts)
		if err != nil {
			return describeError("failed to dial", err)
		}
		if call == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, call)
		}
		fmt.Fprintf(out, "Call ID: %s\n", call.ID)
		fmt.Fprintf(out, "  Connection: %s\n", call.ConnectionID)
		fmt.Fprintf(out, "  Stream: %s\n", call.StreamID)
		return nil
	},
}

func init() {
	dialCmd.Flags().String("token", "", "Client token for the session (required)")
	dialCmd.Flags().Bool("secure", false, "Use TLS for SIP signaling")
	dialCmd.Flags().String("from", "", "SIP From address")
	dialCmd.Flags().StringToString("header", nil, "Custom SIP header, key=value (repeatable)")
	dialCmd.Flags().String("sip-user", "", "SIP digest username")
	dialCmd.Flags().String("sip-password", "", "SIP digest password")
}
