package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"
)

func (s *Server) handleAllTasksResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tasks := s.store.List("")

	jsonData, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func (s *Server) handleStatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats := s.store.Stats()

	response := map[string]interface{}{
		"server_version":  version.GetVersion(),
		"server_uptime":   s.Uptime().String(),
		"total_tasks":     stats.Total,
		"completed_tasks": stats.Completed,
		"pending_tasks":   stats.Pending,
		"tags":            stats.Tags,
		"timestamp":       time.Now().Format(time.RFC3339),
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
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

func (s *Server) handleNoteResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name, err := noteNameFromURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.notesFS, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %q: %w", name, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     string(data),
		},
	}, nil
}

// noteNameFromURI extracts the file name from a notes://{name} URI and
// rejects anything that could escape the notes directory.
func noteNameFromURI(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, "notes://")
	if !ok || name == "" {
		return "", fmt.Errorf("invalid note URI %q", uri)
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("invalid note name %q", name)
	}
	return name, nil
}
