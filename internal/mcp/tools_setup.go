package mcp

import (
	"mcplab/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// setupTools registers the task-management tools.
func (s *Server) setupTools() {
	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in the system"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Task description")),
		mcp.WithArray("tags", mcp.Description("List of tags"), mcp.WithStringItems()),
	)
	s.mcpServer.AddTool(createTaskTool, s.handleCreateTask)

	listTasksTool := mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks, optionally filtered by tag"),
		mcp.WithString("tag", mcp.Description("Filter by tag")),
	)
	s.mcpServer.AddTool(listTasksTool, s.handleListTasks)

	completeTaskTool := mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithNumber("task_id", mcp.Required(), mcp.Description("Task ID to mark as complete")),
	)
	s.mcpServer.AddTool(completeTaskTool, s.handleCompleteTask)

	batchUpdateTool := mcp.NewTool("batch_update_tasks",
		mcp.WithDescription("Update multiple tasks in a single operation"),
		mcp.WithArray("updates", mcp.Required(),
			mcp.Description("List of updates, each with 'task_id' and fields to update")),
	)
	s.mcpServer.AddTool(batchUpdateTool, s.handleBatchUpdateTasks)

	logging.Debug("Registered task tools")
}
