package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/api"
)

// Token command group
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Project token utilities",
	Long:  "Mint and inspect the short-lived project tokens sent in the X-OPENTOK-AUTH header.",
}

func init() {
	tokenCmd.AddCommand(tokenMintCmd)
	tokenCmd.AddCommand(tokenVerifyCmd)
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a project token",
	Long: `Prints a project token valid for five minutes, for use with curl.

Example:
  curl -H "X-OPENTOK-AUTH: $(opentok token mint)" https://api.opentok.com/v2/project/$OPENTOK_API_KEY/archive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := getCredentials()
		now := time.Now()

		token, err := api.SignAt(creds, now)
		if err != nil {
			return fmt.Errorf("failed to mint token: %w", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), map[string]any{
				"token":     token,
				"expiresAt": now.Add(api.TokenTTL).UTC().Format(time.RFC3339),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify TOKEN",
	Short: "Verify a project token",
	Long:  "Checks a project token against the API secret and prints its claims.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := getAPISecret()
		if secret == "" {
			return fmt.Errorf("--api-secret is required")
		}

		claims, err := api.ParseToken(args[0], secret)
		if err != nil {
			return fmt.Errorf("token is not valid: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, claims)
		}
		fmt.Fprintf(out, "Issuer: %s\n", claims.Issuer)
		fmt.Fprintf(out, "  Type: %s\n", claims.IssuerType)
		fmt.Fprintf(out, "  Issued: %s\n", formatNumericDate(claims.IssuedAt))
		fmt.Fprintf(out, "  Expires: %s\n", formatNumericDate(claims.ExpiresAt))
		fmt.Fprintf(out, "  ID: %s\n", claims.ID)
		return nil
	},
}

func formatNumericDate(d *jwt.NumericDate) string {
	if d == nil {
		return "-"
	}
	return formatTime(d.UTC())
}
