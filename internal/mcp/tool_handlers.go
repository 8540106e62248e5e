package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"mcplab/internal/logging"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// Task tool handlers. Failures surface as tool error results, not Go
// errors, so the framework reports them to the client instead of
// treating them as protocol faults.

func (s *Server) handleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'title' parameter: %v", err)), nil
	}
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Missing 'description' parameter: %v", err)), nil
	}
	tags := request.GetStringSlice("tags", []string{})

	task := s.store.Create(title, description, tags)
	logging.Info("Created task: %d - %s", task.ID, task.Title)

	response := map[string]interface{}{
		"success": true,
		"task":    task,
	}
	resultJSON, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := request.GetString("tag", "")

	tasks := s.store.List(tag)
	resultJSON, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tasks: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := int64(request.GetInt("task_id", 0))
	if taskID == 0 {
		return mcp.NewToolResultError("Missing 'task_id' parameter"), nil
	}

	task, ok := s.store.Update(taskID, map[string]any{"completed": true})
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Task %d not found", taskID)), nil
	}

	response := map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Task %d marked as complete", taskID),
		"task":    task,
	}
	resultJSON, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleBatchUpdateTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawUpdates, ok := request.GetArguments()["updates"].([]any)
	if !ok {
		return mcp.NewToolResultError("Missing 'updates' parameter"), nil
	}

	batchID := uuid.NewString()
	var results []map[string]interface{}
	var errors []string

	for _, raw := range rawUpdates {
		update, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, "Update entry is not an object")
			continue
		}

		taskID, ok := extractTaskID(update)
		if !ok {
			errors = append(errors, "Missing task_id in update")
			continue
		}

		fields := make(map[string]any, len(update))
		for key, value := range update {
			if key != "task_id" {
				fields[key] = value
			}
		}

		task, ok := s.store.Update(taskID, fields)
		if !ok {
			errors = append(errors, fmt.Sprintf("Task %d not found", taskID))
			continue
		}
		results = append(results, map[string]interface{}{
			"task_id": taskID,
			"success": true,
			"task":    task,
		})
	}

	logging.Info("Batch %s: %d updates, %d succeeded, %d failed", batchID, len(rawUpdates), len(results), len(errors))

	response := map[string]interface{}{
		"batch_id":   batchID,
		"total":      len(rawUpdates),
		"successful": len(results),
		"failed":     len(errors),
		"results":    results,
		"errors":     errors,
	}
	resultJSON, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

// extractTaskID pulls a task ID out of a decoded update object. JSON
// numbers arrive as float64; direct in-process calls may pass int types.
// A zero ID counts as missing: no task ever has ID 0.
func extractTaskID(update map[string]any) (int64, bool) {
	var id int64
	switch v := update["task_id"].(type) {
	case float64:
		id = int64(v)
	case int:
		id = int64(v)
	case int64:
		id = v
	}
	if id == 0 {
		return 0, false
	}
	return id, true
}
