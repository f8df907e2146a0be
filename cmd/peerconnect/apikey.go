package main

import (
	"fmt"

	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	apikeyToken       string
	apikeyDescription string
)

func init() {
	apikeyAddCmd.Flags().StringVar(&apikeyToken, "token", "", "Token to register (generated when empty)")
	apikeyAddCmd.Flags().StringVar(&apikeyDescription, "description", "", "Free-form note stored with the key")
	apikeyCmd.AddCommand(apikeyAddCmd)
}

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage bearer tokens",
}

var apikeyAddCmd = &cobra.Command{
	Use:   "add <caller>",
	Short: "Register a bearer token for a caller",
	Long: `Register a bearer token that authenticates as <caller>. Only the
SHA-256 of the token is stored; the token is printed once.

Examples:
  peerconnect apikey add alice
  peerconnect apikey add bob --token s3cret --description "bob's laptop"`,
	Args: cobra.ExactArgs(1),
	RunE: runAPIKeyAdd,
}

func runAPIKeyAdd(cmd *cobra.Command, args []string) error {
	token := apikeyToken
	if token == "" {
		token = uuid.NewString()
	}

	db, err := current.openDB()
	if err != nil {
		return err
	}
	if err := sqlite.NewAPIKeyRepository(db).Add(cmd.Context(), token, args[0], apikeyDescription); err != nil {
		return fmt.Errorf("add api key: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
