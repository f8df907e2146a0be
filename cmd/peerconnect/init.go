package main

import (
	"encoding/json"
	"fmt"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/spf13/cobra"
)

var (
	initAdmin  string
	initCaller string
)

func init() {
	initCmd.Flags().StringVar(&initAdmin, "admin", "", "Admin identity (defaults to contract.admin, then the caller)")
	initCmd.Flags().StringVar(&initCaller, "caller", "", "Identity running instantiate (defaults to auth.default_caller)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Instantiate the contract",
	Long: `Instantiate the contract: an empty project collection, a zero counter
and the admin. This can only run once per database.

Examples:
  # Caller becomes admin
  peerconnect init --caller alice

  # Explicit admin
  peerconnect init --caller alice --admin carol`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	caller := initCaller
	if caller == "" {
		caller = current.cfg.Auth.DefaultCaller
	}
	admin := initAdmin
	if admin == "" {
		admin = current.cfg.Contract.Admin
	}

	var msg contract.InstantiateMsg
	if admin != "" {
		msg.Admin = &admin
	}

	db, err := current.openDB()
	if err != nil {
		return err
	}
	resp, err := current.newHost(db, nil).Instantiate(cmd.Context(), caller, msg)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
