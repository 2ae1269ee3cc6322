package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/api"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Long:  "Prints the OpenAPI document describing every operation this CLI can call. With --json the validated document is printed as JSON.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !jsonOutput {
			_, err := cmd.OutOrStdout().Write(api.RawSpec())
			return err
		}

		doc, err := api.GetSwagger()
		if err != nil {
			return fmt.Errorf("failed to load OpenAPI document: %w", err)
		}
		return outputJSON(cmd.OutOrStdout(), doc)
	},
}
