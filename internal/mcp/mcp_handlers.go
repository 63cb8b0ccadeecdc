package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/stackscan/core"
	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/outwriter"
	"github.com/huangsam/stackscan/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

// stackResult is the payload of detect_stack.
type stackResult struct {
	ProjectTypes []string `json:"project_types"`
	EntryPoints  []string `json:"entry_points"`
}

// configFor copies the base config and points it at the requested path.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	root, err := contract.ResolveRootPath(request.GetString("path", ""))
	if err != nil {
		return nil, err
	}
	cfg := h.baseCfg.Clone()
	cfg.RootPath = root
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err)), nil
	}
	if d := request.GetInt("max_depth", 0); d != 0 {
		if d < 1 {
			return mcp.NewToolResultError(fmt.Sprintf("max_depth must be at least 1, got %d", d)), nil
		}
		cfg.MaxDepth = d
	}
	cfg.Save = request.GetBool("save_report", false)

	start := time.Now()
	report, err := core.GetAnalysisReport(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if cfg.Save {
		if _, err := outwriter.PersistReport(report); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save report: %v", err)), nil
		}
	}
	if h.store != nil {
		if _, err := core.RecordRun(h.store, report, start, time.Now()); err != nil {
			contract.LogWarn("Run history recording failed", err)
		}
	}

	return jsonResult(schema.NewReportDocument(report)), nil
}

func (h *toolHandler) handleDetectStack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err)), nil
	}

	report, err := core.NewReportBuilder(core.WithSuppressHeader(ctx), cfg).
		DetectStack().
		LocateEntryPoints().
		Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stack detection failed: %v", err)), nil
	}

	doc := schema.NewReportDocument(report)
	return jsonResult(stackResult{
		ProjectTypes: doc.ProjectTypes,
		EntryPoints:  doc.EntryPoints,
	}), nil
}

// jsonResult encodes v as an indented text result, or an error result if v
// cannot be encoded.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}
