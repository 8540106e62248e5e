// Package main implements the transport example MCP server. The same
// tool surface is served over stdio, SSE or streamable HTTP depending on
// flags, showing that transport selection is independent of the tools.
package main

import (
	"fmt"
	"log"
	"os"

	"mcplab/internal/logging"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var (
	transport string
	host      string
	port      int

	rootCmd = &cobra.Command{
		Use:   "transport-server",
		Short: "MCP server demonstrating different transport options",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.Flags().StringVar(&transport, "transport", "stdio", "Transport to serve on (stdio, sse or http)")
	rootCmd.Flags().StringVar(&host, "host", "0.0.0.0", "Host to bind for network transports")
	rootCmd.Flags().IntVar(&port, "port", 8000, "Port to bind for network transports")
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.Initialize(false)

	if transport == "streamable-http" {
		transport = "http"
	}

	s := newServer(transport)
	addr := fmt.Sprintf("%s:%d", host, port)

	logging.Info("Starting MCP server with %s transport", transport)

	switch transport {
	case "stdio":
		errLogger := log.New(os.Stderr, "[transport-server] ", log.LstdFlags)
		return server.ServeStdio(s, server.WithErrorLogger(errLogger))
	case "sse":
		return server.NewSSEServer(s).Start(addr)
	case "http":
		logging.Info("MCP endpoint available at http://%s/mcp", addr)
		return server.NewStreamableHTTPServer(s).Start(addr)
	}
	return fmt.Errorf("unknown transport %q (expected stdio, sse or http)", transport)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
