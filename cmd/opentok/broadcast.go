package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/client"
)

// Broadcast command group
var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Live broadcast operations",
}

func init() {
	broadcastCmd.AddCommand(broadcastStartCmd)
	broadcastCmd.AddCommand(broadcastStopCmd)
	broadcastCmd.AddCommand(broadcastGetCmd)
	broadcastCmd.AddCommand(broadcastLayoutCmd)
}

func printBroadcast(w io.Writer, b *client.Broadcast) {
	fmt.Fprintf(w, "Broadcast ID: %s\n", b.ID)
	fmt.Fprintf(w, "  Status: %s\n", b.Status)
	fmt.Fprintf(w, "  Session: %s\n", b.SessionID)
	fmt.Fprintf(w, "  Created: %s\n", formatTime(b.Created()))
	if b.BroadcastUrls.HLS != "" {
		fmt.Fprintf(w, "  HLS: %s\n", b.BroadcastUrls.HLS)
	}
	for _, r := range b.BroadcastUrls.RTMP {
		fmt.Fprintf(w, "  RTMP: %s/%s (%s)\n", r.ServerURL, r.StreamName, r.Status)
	}
}

var broadcastStartCmd = &cobra.Command{
	Use:   "start SESSION_ID",
	Short: "Start a live broadcast",
	Long: `Starts broadcasting a session to HLS and/or RTMP destinations.

Example:
  opentok broadcast start SESSION_ID --hls
  opentok broadcast start SESSION_ID --rtmp-url rtmp://live.example.com/app --rtmp-stream key`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hls, _ := cmd.Flags().GetBool("hls")
		rtmpURL, _ := cmd.Flags().GetString("rtmp-url")
		rtmpStream, _ := cmd.Flags().GetString("rtmp-stream")
		maxDuration, _ := cmd.Flags().GetInt("max-duration")
		resolution, _ := cmd.Flags().GetString("resolution")

		opts := client.BroadcastOptions{
			Layout:      layoutFromFlags(cmd),
			MaxDuration: maxDuration,
			Resolution:  resolution,
		}
		if hls {
			opts.Outputs.HLS = &client.HLSOutput{}
		}
		if rtmpURL != "" {
			opts.Outputs.RTMP = []client.RTMPOutput{{ServerURL: rtmpURL, StreamName: rtmpStream}}
		}
		if opts.Outputs.HLS == nil && len(opts.Outputs.RTMP) == 0 {
			return fmt.Errorf("--hls or --rtmp-url is required")
		}

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b, err := c.StartBroadcast(ctx, args[0], opts)
		if err != nil {
			return describeError("failed to start broadcast", err)
		}
		if b == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), b)
		}
		printBroadcast(cmd.OutOrStdout(), b)
		return nil
	},
}

func init() {
	broadcastStartCmd.Flags().Bool("hls", false, "Broadcast over HLS")
	broadcastStartCmd.Flags().String("rtmp-url", "", "RTMP server URL")
	broadcastStartCmd.Flags().String("rtmp-stream", "", "RTMP stream name")
	broadcastStartCmd.Flags().Int("max-duration", 0, "Maximum duration in seconds")
	broadcastStartCmd.Flags().String("resolution", "", "Resolution, e.g. 1280x720")
	addLayoutFlags(broadcastStartCmd)
}

var broadcastStopCmd = &cobra.Command{
	Use:   "stop BROADCAST_ID",
	Short: "Stop a live broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b, err := c.StopBroadcast(ctx, args[0])
		if err != nil {
			return describeError("failed to stop broadcast", err)
		}
		if b == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), b)
		}
		printBroadcast(cmd.OutOrStdout(), b)
		return nil
	},
}

var broadcastGetCmd = &cobra.Command{
	Use:   "get BROADCAST_ID",
	Short: "Show a live broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b, err := c.GetBroadcast(ctx, args[0])
		if err != nil {
			return describeError("failed to get broadcast", err)
		}
		if b == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), b)
		}
		printBroadcast(cmd.OutOrStdout(), b)
		return nil
	},
}

var broadcastLayoutCmd = &cobra.Command{
	Use:   "layout BROADCAST_ID",
	Short: "Show or change the layout of a live broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayout(cmd, client.LayoutResourceBroadcast, args[0])
	},
}

func init() {
	addLayoutFlags(broadcastLayoutCmd)
}
