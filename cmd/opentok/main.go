// Package main provides a CLI for the OpenTok REST API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/api"
	"github.com/opentok/opentok-go/pkg/client"
)

var (
	// Global flags
	apiKey     string
	apiSecret  string
	apiURL     string
	timeout    time.Duration
	jsonOutput bool
	debug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opentok",
	Short: "OpenTok REST API CLI",
	Long: `A command-line client for the OpenTok REST API.

This tool allows you to:
  - Create sessions
  - Record sessions as archives
  - Broadcast sessions over HLS and RTMP
  - Inspect and restyle streams
  - Signal and disconnect clients
  - Dial SIP endpoints into a session

Environment variables:
  OPENTOK_API_KEY    - Project API key
  OPENTOK_API_SECRET - Project API secret
  OPENTOK_API_URL    - API base URL (default: https://api.opentok.com)
  OPENTOK_DEBUG      - Log every request to stderr when true`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Project API key (or OPENTOK_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&apiSecret, "api-secret", "", "Project API secret (or OPENTOK_API_SECRET env)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "API base URL (default: https://api.opentok.com)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every request to stderr (or OPENTOK_DEBUG env)")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(broadcastCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(dialCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(openapiCmd)
}

// getAPIKey returns the API key from flags or environment
func getAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	return os.Getenv("OPENTOK_API_KEY")
}

// getAPISecret returns the API secret from flags or environment
func getAPISecret() string {
	if apiSecret != "" {
		return apiSecret
	}
	return os.Getenv("OPENTOK_API_SECRET")
}

// getBaseURL returns the API base URL from flags or environment
func getBaseURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := os.Getenv("OPENTOK_API_URL"); url != "" {
		return url
	}
	return api.DefaultServer
}

// debugEnabled reports whether request logging was asked for
func debugEnabled() bool {
	if debug {
		return true
	}
	v, err := strconv.ParseBool(os.Getenv("OPENTOK_DEBUG"))
	return err == nil && v
}

func getCredentials() api.Credentials {
	return api.Credentials{APIKey: getAPIKey(), APISecret: getAPISecret()}
}

// newClient creates a new API client
func newClient() (*client.Client, error) {
	opts := []client.Option{
		client.WithBaseURL(getBaseURL()),
		client.WithTimeout(timeout),
		client.WithAppendUserAgent("opentok-cli"),
	}
	if debugEnabled() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, client.WithLogger(logger))
	}
	return client.New(getAPIKey(), getAPISecret(), opts...)
}

// outputJSON prints the value as JSON
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printNoContent reports a call the API answered with 204 and no body.
func printNoContent(w io.Writer) error {
	if jsonOutput {
		return outputJSON(w, nil)
	}
	fmt.Fprintln(w, "No content")
	return nil
}

// describeError prefixes the failure with the class a user can act on.
func describeError(action string, err error) error {
	switch {
	case client.IsAuthError(err):
		return fmt.Errorf("authentication failed: %w", err)
	case client.IsNetworkError(err):
		return fmt.Errorf("%s: could not reach %s: %w", action, getBaseURL(), err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
