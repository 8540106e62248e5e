// Package main implements the minimal MCP server: a few plain tools and
// one static resource, served over stdio. The bare minimum needed for a
// working tool-serving server usable from an MCP client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "Minimal MCP Server"

func newServer() *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	greetTool := mcp.NewTool("greet",
		mcp.WithDescription("Greet a user by name"),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name of the person to greet")),
	)
	s.AddTool(greetTool, handleGreet)

	addTool := mcp.NewTool("add_numbers",
		mcp.WithDescription("Add two numbers together"),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First number")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second number")),
	)
	s.AddTool(addTool, handleAddNumbers)

	timeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current date and time"),
	)
	s.AddTool(timeTool, handleGetCurrentTime)

	settingsResource := mcp.NewResource(
		"config://settings",
		"Server Settings",
		mcp.WithResourceDescription("The server configuration settings"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(settingsResource, handleSettingsResource)

	return s
}

func handleGreet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'name' parameter: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hello, %s! Welcome to the minimal MCP server.", name)), nil
}

func handleAddNumbers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireInt("a")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'a' parameter: %v", err)), nil
	}
	b, err := request.RequireInt("b")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'b' parameter: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d", a+b)), nil
}

func handleGetCurrentTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(time.Now().Format("2006-01-02 15:04:05")), nil
}

func handleSettingsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	settings := map[string]interface{}{
		"server_name": serverName,
		"version":     version.GetVersion(),
		"features":    []string{"greetings", "math", "time"},
		"author":      "mcplab",
	}

	jsonData, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func run() int {
	errLogger := log.New(os.Stderr, "[minimal-server] ", log.LstdFlags)

	if err := server.ServeStdio(newServer(), server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
