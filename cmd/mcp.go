package cmd

import (
	"github.com/huangsam/stackscan/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the stackscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze project directories via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// Tool calls carry their own path; the working directory only satisfies validation.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyStore)
	},
}
