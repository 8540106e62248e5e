// Package main implements the authenticated-fetch MCP server: one tool
// that retrieves a URL, falling back to SPNEGO/Kerberos or NTLM when the
// server demands authentication. The handshakes are delegated to
// external libraries; this program only composes them into a tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mcplab/internal/fetch"
	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type authFetchServer struct {
	fetcher *fetch.Fetcher
}

func newServer(fetcher *fetch.Fetcher) *server.MCPServer {
	afs := &authFetchServer{fetcher: fetcher}

	s := server.NewMCPServer(
		"Windows Auth Fetch",
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	fetchTool := mcp.NewTool("fetch_with_windows_auth",
		mcp.WithDescription("Fetch content from a URL using automatic Windows authentication"),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL to fetch")),
		mcp.WithString("auth_method", mcp.Description("Authentication method to use (auto, negotiate, kerberos, ntlm)")),
	)
	s.AddTool(fetchTool, afs.handleFetch)

	return s
}

func (afs *authFetchServer) handleFetch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'url' parameter: %v", err)), nil
	}
	method := request.GetString("auth_method", fetch.MethodAuto)

	result, err := afs.fetcher.Fetch(ctx, url, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func run() int {
	errLogger := log.New(os.Stderr, "[authfetch-server] ", log.LstdFlags)

	fetcher := fetch.NewFetcher(fetch.Options{})
	errLogger.Printf("Available auth methods: %v", fetcher.Available())

	if err := server.ServeStdio(newServer(fetcher), server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
