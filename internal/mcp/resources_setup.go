package mcp

import (
	"mcplab/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// setupResources registers the read-only data endpoints.
func (s *Server) setupResources() {
	allTasksResource := mcp.NewResource(
		"tasks://all",
		"All Tasks",
		mcp.WithResourceDescription("Every task in the store as a JSON document"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(allTasksResource, s.handleAllTasksResource)

	statsResource := mcp.NewResource(
		"stats://overview",
		"Task Statistics",
		mcp.WithResourceDescription("Task statistics and server information"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(statsResource, s.handleStatsResource)

	// The notes resource is only published when a notes directory is
	// configured.
	if s.notesFS != nil {
		notesTemplate := mcp.NewResourceTemplate(
			"notes://{name}",
			"Task Notes",
			mcp.WithTemplateDescription("Free-form notes files from the configured notes directory"),
			mcp.WithTemplateMIMEType("text/markdown"),
		)
		s.mcpServer.AddResourceTemplate(notesTemplate, s.handleNoteResource)
	}

	logging.Debug("Registered task resources")
}
