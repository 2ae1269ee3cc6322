package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/client"
)

// Archive command group
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive operations",
	Long:  "Start, stop, inspect and delete session recordings.",
}

func init() {
	archiveCmd.AddCommand(archiveStartCmd)
	archiveCmd.AddCommand(archiveStopCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveLayoutCmd)
}

func printArchive(w io.Writer, a *client.Archive) {
	fmt.Fprintf(w, "Archive ID: %s\n", a.ID)
	fmt.Fprintf(w, "  Status: %s\n", a.Status)
	fmt.Fprintf(w, "  Session: %s\n", a.SessionID)
	if a.Name != "" {
		fmt.Fprintf(w, "  Name: %s\n", a.Name)
	}
	fmt.Fprintf(w, "  Created: %s\n", formatTime(a.Created()))
	if a.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %ds\n", a.Duration)
	}
	if a.URL != nil {
		fmt.Fprintf(w, "  URL: %s\n", *a.URL)
	}
}

// layoutFromFlags reads --layout, --stylesheet and --screenshare-type. It
// returns nil when no layout was given.
func layoutFromFlags(cmd *cobra.Command) *client.Layout {
	layoutType, _ := cmd.Flags().GetString("layout")
	stylesheet, _ := cmd.Flags().GetString("stylesheet")
	screenshare, _ := cmd.Flags().GetString("screenshare-type")
	if layoutType == "" && stylesheet == "" && screenshare == "" {
		return nil
	}
	return &client.Layout{
		Type:            client.LayoutType(layoutType),
		Stylesheet:      stylesheet,
		ScreenshareType: client.LayoutType(screenshare),
	}
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "", "Layout type (bestFit, custom, horizontalPresentation, pip, verticalPresentation)")
	cmd.Flags().String("stylesheet", "", "Stylesheet for the custom layout")
	cmd.Flags().String("screenshare-type", "", "Layout used while a screen is shared (bestFit only)")
}

var archiveStartCmd = &cobra.Command{
	Use:   "start SESSION_ID",
	Short: "Start recording a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		outputMode, _ := cmd.Flags().GetString("output-mode")
		resolution, _ := cmd.Flags().GetString("resolution")
		streamMode, _ := cmd.Flags().GetString("stream-mode")

		opts := client.ArchiveOptions{
			Name:       name,
			OutputMode: client.OutputMode(outputMode),
			Resolution: resolution,
			StreamMode: client.StreamMode(streamMode),
			Layout:     layoutFromFlags(cmd),
		}
		if cmd.Flags().Changed("audio") {
			v, _ := cmd.Flags().GetBool("audio")
			opts.HasAudio = &v
		}
		if cmd.Flags().Changed("video") {
			v, _ := cmd.Flags().GetBool("video")
			opts.HasVideo = &v
		}

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		archive, err := c.StartArchive(ctx, args[0], opts)
		if err != nil {
			return describeError("failed to start archive", err)
		}
		if archive == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), archive)
		}
		printArchive(cmd.OutOrStdout(), archive)
		return nil
	},
}

func init() {
	archiveStartCmd.Flags().String("name", "", "Archive name")
	archiveStartCmd.Flags().String("output-mode", "", "composed or individual")
	archiveStartCmd.Flags().String("resolution", "", "Resolution, e.g. 1280x720")
	archiveStartCmd.Flags().String("stream-mode", "", "auto or manual")
	archiveStartCmd.Flags().Bool("audio", true, "Record audio")
	archiveStartCmd.Flags().Bool("video", true, "Record video")
	addLayoutFlags(archiveStartCmd)
}

var archiveStopCmd = &cobra.Command{
	Use:   "stop ARCHIVE_ID",
	Short: "Stop a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		archive, err := c.StopArchive(ctx, args[0])
		if err != nil {
			return describeError("failed to stop archive", err)
		}
		if archive == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), archive)
		}
		printArchive(cmd.OutOrStdout(), archive)
		return nil
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get ARCHIVE_ID",
	Short: "Show an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		archive, err := c.GetArchive(ctx, args[0])
		if err != nil {
			return describeError("failed to get archive", err)
		}
		if archive == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), archive)
		}
		printArchive(cmd.OutOrStdout(), archive)
		return nil
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete ARCHIVE_ID",
	Short: "Delete an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := c.DeleteArchive(ctx, args[0]); err != nil {
			return describeError("failed to delete archive", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), map[string]bool{"deleted": true})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archive '%s' deleted successfully\n", args[0])
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, _ := cmd.Flags().GetInt("offset")
		count, _ := cmd.Flags().GetInt("count")
		sessionID, _ := cmd.Flags().GetString("session-id")

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		list, err := c.ListArchives(ctx, client.ArchiveFilter{
			Offset:    offset,
			Count:     count,
			SessionID: sessionID,
		})
		if err != nil {
			return describeError("failed to list archives", err)
		}
		if list == nil {
			return printNoContent(cmd.OutOrStdout())
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, list)
		}

		if len(list.Items) == 0 {
			fmt.Fprintln(out, "No archives found")
			return nil
		}

		fmt.Fprintf(out, "Archives (%d of %d):\n", len(list.Items), list.Count)
		for i := range list.Items {
			a := &list.Items[i]
			fmt.Fprintf(out, "  %s  %-9s  %s  %s\n", a.ID, a.Status, formatTime(a.Created()), a.Name)
		}
		return nil
	},
}

func init() {
	archiveListCmd.Flags().Int("offset", 0, "Number of archives to skip")
	archiveListCmd.Flags().Int("count", 0, "Maximum number of archives (server default when 0)")
	archiveListCmd.Flags().String("session-id", "", "Only list archives of this session")
}

var archiveLayoutCmd = &cobra.Command{
	Use:   "layout ARCHIVE_ID",
	Short: "Show or change the layout of a composed archive",
	Long: `Without layout flags, prints the current layout. With --layout, changes it.

Example:
  opentok archive layout ARCHIVE_ID --layout pip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayout(cmd, client.LayoutResourceArchive, args[0])
	},
}

func init() {
	addLayoutFlags(archiveLayoutCmd)
}

// runLayout shows or changes the layout of a broadcast or archive.
func runLayout(cmd *cobra.Command, resource client.LayoutResource, id string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	if layout := layoutFromFlags(cmd); layout != nil {
		if err := c.UpdateLayout(ctx, resource, id, *layout); err != nil {
			return describeError("failed to update layout", err)
		}
		if jsonOutput {
			return outputJSON(out, layout)
		}
		fmt.Fprintf(out, "Layout of %s '%s' set to %s\n", resource, id, layout.Type)
		return nil
	}

	layout, err := c.GetLayout(ctx, resource, id)
	if err != nil {
		return describeError("failed to get layout", err)
	}
	if layout == nil {
		return printNoContent(cmd.OutOrStdout())
	}
	if jsonOutput {
		return outputJSON(out, layout)
	}
	fmt.Fprintf(out, "Layout: %s\n", layout.Type)
	if layout.Stylesheet != "" {
		fmt.Fprintf(out, "  Stylesheet: %s\n", layout.Stylesheet)
	}
	if layout.ScreenshareType != "" {
		fmt.Fprintf(out, "  Screenshare: %s\n", layout.ScreenshareType)
	}
	return nil
}
