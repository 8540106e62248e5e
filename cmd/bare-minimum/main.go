// Package main implements the absolute bare minimum MCP server: one
// tool, no arguments, stdio transport.
package main

import (
	"context"
	"log"
	"os"

	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func newServer() *server.MCPServer {
	s := server.NewMCPServer(
		"Bare Minimum",
		version.GetVersion(),
		server.WithToolCapabilities(true),
	)

	helloTool := mcp.NewTool("hello",
		mcp.WithDescription("Say hello"),
	)
	s.AddTool(helloTool, handleHello)

	return s
}

func handleHello(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("Hello from MCP!"), nil
}

func run() int {
	errLogger := log.New(os.Stderr, "[bare-minimum] ", log.LstdFlags)

	if err := server.ServeStdio(newServer(), server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
