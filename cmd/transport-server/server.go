package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"mcplab/internal/logging"
	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	fetchLimitMin     = 1
	fetchLimitMax     = 100
	fetchLimitDefault = 10
)

// transportServer carries the state the handlers need beyond their
// arguments: which transport the server was started with.
type transportServer struct {
	transport string
}

func newServer(transport string) *server.MCPServer {
	ts := &transportServer{transport: transport}

	s := server.NewMCPServer(
		"Transport Example Server",
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	fetchDataTool := mcp.NewTool("fetch_data",
		mcp.WithDescription("Fetch data from a source with optional filtering"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Data source name")),
		mcp.WithNumber("limit", mcp.Description("Maximum items to fetch (1-100, default 10)")),
		mcp.WithString("filter_by", mcp.Description("Optional filter criteria")),
	)
	s.AddTool(fetchDataTool, ts.handleFetchData)

	calculateTool := mcp.NewTool("calculate",
		mcp.WithDescription("Safely evaluate a mathematical expression like \"2 + 2\" or \"10 * 5\""),
		mcp.WithString("expression", mcp.Required(), mcp.Description("A mathematical expression using + - * / ( ) and numbers")),
	)
	s.AddTool(calculateTool, ts.handleCalculate)

	statsResource := mcp.NewResource(
		"stats://server",
		"Server Statistics",
		mcp.WithResourceDescription("Current server statistics"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(statsResource, ts.handleServerStatsResource)

	return s
}

func (ts *transportServer) handleFetchData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'source' parameter: %v", err)), nil
	}

	limit := request.GetInt("limit", fetchLimitDefault)
	if limit < fetchLimitMin || limit > fetchLimitMax {
		return mcp.NewToolResultError(fmt.Sprintf("'limit' must be between %d and %d", fetchLimitMin, fetchLimitMax)), nil
	}
	filterBy := request.GetString("filter_by", "")

	// Simulated payload: the sample rows are capped regardless of limit.
	items := limit
	if items > 5 {
		items = 5
	}
	data := make([]string, 0, items)
	for i := 0; i < items; i++ {
		data = append(data, fmt.Sprintf("Item %d", i))
	}

	result := map[string]interface{}{
		"source":    source,
		"count":     limit,
		"filter":    filterBy,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	logging.Info("Fetched data from %s with limit %d", source, limit)

	resultJSON, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (ts *transportServer) handleCalculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression, err := request.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'expression' parameter: %v", err)), nil
	}

	value, err := evaluate(expression)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatNumber(value)), nil
}

func (ts *transportServer) handleServerStatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats := map[string]interface{}{
		"platform":   runtime.GOOS,
		"go_version": runtime.Version(),
		"process_id": os.Getpid(),
		"transport":  ts.transport,
		"timestamp":  time.Now().Unix(),
	}

	jsonData, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
