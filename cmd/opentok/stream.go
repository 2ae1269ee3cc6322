package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/client"
)

// Stream command group
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream operations",
}

func init() {
	streamCmd.AddCommand(streamGetCmd)
	streamCmd.AddCommand(streamListCmd)
	streamCmd.AddCommand(streamClassesCmd)
}

var streamGetCmd = &cobra.Command{
	Use:   "get SESSION_ID STREAM_ID",
	Short: "Show one stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s, err := c.GetStream(ctx, args[0], args[1])
		if err != nil {
			return describeError("failed to get stream", err)
		}
		if s == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, s)
		}
		fmt.Fprintf(out, "Stream ID: %s\n", s.ID)
		fmt.Fprintf(out, "  Video: %s\n", s.VideoType)
		if s.Name != "" {
			fmt.Fprintf(out, "  Name: %s\n", s.Name)
		}
		fmt.Fprintf(out, "  Classes: %s\n", strings.Join(s.LayoutClassList, ","))
		return nil
	},
}

var streamListCmd = &cobra.Command{
	Use:   "list SESSION_ID",
	Short: "List the streams of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		list, err := c.ListStreams(ctx, args[0])
		if err != nil {
			return describeError("failed to list streams", err)
		}
		if list == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, list)
		}
		if len(list.Items) == 0 {
			fmt.Fprintln(out, "No streams found")
			return nil
		}
		fmt.Fprintf(out, "Streams (%d):\n", list.Count)
		for _, s := range list.Items {
			fmt.Fprintf(out, "  %s  %-6s  %s\n", s.ID, s.VideoType, strings.Join(s.LayoutClassList, ","))
		}
		return nil
	},
}

var streamClassesCmd = &cobra.Command{
	Use:   "classes SESSION_ID STREAM_ID [CLASS...]",
	Short: "Set the layout classes of a stream",
	Long: `Replaces the layout classes of one stream. Pass no classes to clear them.

Example:
  opentok stream classes SESSION_ID STREAM_ID full focus`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		classes := append([]string{}, args[2:]...)
		if err := c.UpdateStream(ctx, args[0], args[1], client.StreamProperties{LayoutClassList: classes}); err != nil {
			return describeError("failed to update stream", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), client.StreamProperties{LayoutClassList: classes})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stream '%s' classes set to [%s]\n", args[1], strings.Join(classes, ","))
		return nil
	},
}
