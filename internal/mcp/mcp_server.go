// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the stackscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Stackscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	s.AddTool(mcp.NewTool("analyze_project",
		mcp.WithDescription("Detect the technology stack, architecture patterns, entry points and code statistics of a project directory."),
		mcp.WithString("path", mcp.Description("Path to the project directory."), mcp.Required()),
		mcp.WithNumber("max_depth", mcp.Description("Maximum directory depth to list (defaults to 3).")),
		mcp.WithBoolean("save_report", mcp.Description("Also write project_analysis.json into the project directory. Defaults to false.")),
	), h.handleAnalyzeProject)

	s.AddTool(mcp.NewTool("detect_stack",
		mcp.WithDescription("Detect project types from marker files and locate conventional entry points."),
		mcp.WithString("path", mcp.Description("Path to the project directory."), mcp.Required()),
	), h.handleDetectStack)

	return s
}

// StartMCPServer starts the stackscan MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
