// Package main implements the echo MCP server: a single tool that
// returns its input unchanged. The smallest useful tool-serving server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func newServer() *server.MCPServer {
	s := server.NewMCPServer(
		"Echo Server",
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	echoTool := mcp.NewTool("echo",
		mcp.WithDescription("Echo the input message back as-is"),
		mcp.WithString("message", mcp.Required(), mcp.Description("The message to echo back")),
	)
	s.AddTool(echoTool, handleEcho)

	return s
}

func handleEcho(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'message' parameter: %v", err)), nil
	}
	return mcp.NewToolResultText(message), nil
}

func run() int {
	errLogger := log.New(os.Stderr, "[echo-server] ", log.LstdFlags)

	if err := server.ServeStdio(newServer(), server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
