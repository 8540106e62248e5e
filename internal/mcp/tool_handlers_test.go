package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"mcplab/internal/config"
	"mcplab/internal/taskstore"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		ServerName: "Test Task Manager",
		Transport:  config.TransportStdio,
		Host:       "127.0.0.1",
		Port:       8000,
	}
	return NewServer(taskstore.New(), cfg)
}

func newCallToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func TestHandleCreateTask(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCreateTask(context.Background(), newCallToolRequest(map[string]interface{}{
		"title":       "Write docs",
		"description": "Document the task tools",
		"tags":        []any{"docs", "mcp"},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response struct {
		Success bool           `json:"success"`
		Task    taskstore.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))

	assert.True(t, response.Success)
	assert.Equal(t, int64(1), response.Task.ID)
	assert.Equal(t, "Write docs", response.Task.Title)
	assert.Equal(t, []string{"docs", "mcp"}, response.Task.Tags)
	assert.False(t, response.Task.Completed)
}

func TestHandleCreateTaskMissingTitle(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCreateTask(context.Background(), newCallToolRequest(map[string]interface{}{
		"description": "No title here",
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "title")
}

func TestHandleListTasksFiltersByTag(t *testing.T) {
	s := newTestServer(t)
	s.store.Create("One", "", []string{"dev"})
	s.store.Create("Two", "", []string{"security"})

	result, err := s.handleListTasks(context.Background(), newCallToolRequest(map[string]interface{}{
		"tag": "dev",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var tasks []taskstore.Task
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "One", tasks[0].Title)
}

func TestHandleListTasksEmpty(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListTasks(context.Background(), newCallToolRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var tasks []taskstore.Task
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &tasks))
	assert.Empty(t, tasks)
}

func TestHandleCompleteTask(t *testing.T) {
	s := newTestServer(t)
	task := s.store.Create("Finish me", "", nil)

	result, err := s.handleCompleteTask(context.Background(), newCallToolRequest(map[string]interface{}{
		"task_id": float64(task.ID),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "marked as complete")

	updated, ok := s.store.Get(task.ID)
	require.True(t, ok)
	assert.True(t, updated.Completed)
}

func TestHandleCompleteTaskNotFound(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCompleteTask(context.Background(), newCallToolRequest(map[string]interface{}{
		"task_id": float64(99),
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Task 99 not found")
}

func TestHandleCompleteTaskMissingID(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCompleteTask(context.Background(), newCallToolRequest(nil))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "task_id")
}

func TestHandleBatchUpdateTasks(t *testing.T) {
	s := newTestServer(t)
	first := s.store.Create("First", "", nil)
	second := s.store.Create("Second", "", nil)

	result, err := s.handleBatchUpdateTasks(context.Background(), newCallToolRequest(map[string]interface{}{
		"updates": []any{
			map[string]any{"task_id": float64(first.ID), "completed": true},
			map[string]any{"task_id": float64(second.ID), "title": "Renamed"},
			map[string]any{"task_id": float64(42), "completed": true},
			map[string]any{"completed": true},
		},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response struct {
		BatchID    string   `json:"batch_id"`
		Total      int      `json:"total"`
		Successful int      `json:"successful"`
		Failed     int      `json:"failed"`
		Errors     []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))

	assert.NotEmpty(t, response.BatchID)
	assert.Equal(t, 4, response.Total)
	assert.Equal(t, 2, response.Successful)
	assert.Equal(t, 2, response.Failed)
	assert.Contains(t, response.Errors, "Task 42 not found")
	assert.Contains(t, response.Errors, "Missing task_id in update")

	updatedFirst, _ := s.store.Get(first.ID)
	assert.True(t, updatedFirst.Completed)
	updatedSecond, _ := s.store.Get(second.ID)
	assert.Equal(t, "Renamed", updatedSecond.Title)
}

func TestHandleBatchUpdateTasksZeroIDIsMissing(t *testing.T) {
	s := newTestServer(t)
	s.store.Create("Untouched", "", nil)

	result, err := s.handleBatchUpdateTasks(context.Background(), newCallToolRequest(map[string]interface{}{
		"updates": []any{
			map[string]any{"task_id": float64(0), "completed": true},
		},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response struct {
		Successful int      `json:"successful"`
		Failed     int      `json:"failed"`
		Errors     []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))

	assert.Equal(t, 0, response.Successful)
	assert.Equal(t, 1, response.Failed)
	assert.Equal(t, []string{"Missing task_id in update"}, response.Errors)
}

func TestHandleBatchUpdateTasksMissingUpdates(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleBatchUpdateTasks(context.Background(), newCallToolRequest(nil))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "updates")
}
