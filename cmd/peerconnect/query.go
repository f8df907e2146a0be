package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/spf13/cobra"
)

func init() {
	queryCmd.AddCommand(queryListCmd, queryGetCmd, queryCollaboratorsCmd, queryUserCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read projects straight from the database",
}

var queryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runQuery(cmd, func(ctx context.Context, h *host.Host) (any, error) {
			return h.Query(ctx, contract.QueryMsg{ListProjects: &contract.ListProjectsMsg{}})
		})
	},
}

var queryGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, func(ctx context.Context, h *host.Host) (any, error) {
			return h.Query(ctx, contract.QueryMsg{GetProject: &contract.GetProjectMsg{ProjectID: args[0]}})
		})
	},
}

var queryCollaboratorsCmd = &cobra.Command{
	Use:   "collaborators <project-id>",
	Short: "List join requests on a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, func(ctx context.Context, h *host.Host) (any, error) {
			return h.ListCollaborators(ctx, args[0])
		})
	},
}

var queryUserCmd = &cobra.Command{
	Use:   "user <address>",
	Short: "List projects a user owns or asked to join",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, func(ctx context.Context, h *host.Host) (any, error) {
			return h.UserProjects(ctx, args[0])
		})
	},
}

func runQuery(cmd *cobra.Command, fn func(ctx context.Context, h *host.Host) (any, error)) error {
	db, err := current.openDB()
	if err != nil {
		return err
	}
	result, err := fn(cmd.Context(), current.newHost(db, nil))
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
