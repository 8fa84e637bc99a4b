package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetlens/internal/middleware"
)

var flagEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API access token for --user",
	Long:  "Sign a short-lived access token with JWT_SECRET, for calling the API during development.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagEmail, "email", "", "Email claim to embed")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}
	token, err := middleware.GenerateAccessToken(userID, flagEmail)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
