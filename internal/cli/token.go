package cli

import (
	"errors"
	"fmt"
	"time"

	"trip-planner/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	tokenClient string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:     "token",
	Short:   "Issue a session token for the local API",
	Args:    cobra.NoArgs,
	GroupID: "local-api",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := newService()
		if err != nil {
			return err
		}
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set; the API server generates a throwaway secret in dev mode")
		}

		token, err := utils.IssueSessionToken(cfg.JWTSecret, tokenClient, tokenTTL)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, map[string]any{
				"token":     token,
				"client":    tokenClient,
				"expiresAt": time.Now().Add(tokenTTL).UTC(),
			})
		}
		fmt.Fprintln(w, token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenClient, "client", "cli", "Client name recorded in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "Token lifetime")
}
