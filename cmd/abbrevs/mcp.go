package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/abbrev-registry/pkg/api"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the abbreviation tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			srv := server.NewMCPServer("abbrevs", version, server.WithToolCapabilities(false))
			api.RegisterMCPTools(srv, reg, a.logger)
			return server.ServeStdio(srv)
		},
	}
}
