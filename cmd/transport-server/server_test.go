package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
	require.True(t, ok)
	return content.Text
}

func TestHandleFetchData(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	result, err := ts.handleFetchData(context.Background(), newCallToolRequest(map[string]interface{}{
		"source": "warehouse",
		"limit":  float64(3),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Source string   `json:"source"`
		Count  int      `json:"count"`
		Data   []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	assert.Equal(t, "warehouse", payload.Source)
	assert.Equal(t, 3, payload.Count)
	assert.Equal(t, []string{"Item 0", "Item 1", "Item 2"}, payload.Data)
}

func TestHandleFetchDataCapsSampleRows(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	result, err := ts.handleFetchData(context.Background(), newCallToolRequest(map[string]interface{}{
		"source": "warehouse",
		"limit":  float64(50),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Count int      `json:"count"`
		Data  []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	assert.Equal(t, 50, payload.Count)
	assert.Len(t, payload.Data, 5)
}

func TestHandleFetchDataLimitOutOfRange(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	for _, limit := range []float64{0, 101} {
		result, err := ts.handleFetchData(context.Background(), newCallToolRequest(map[string]interface{}{
			"source": "warehouse",
			"limit":  limit,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError, "limit %v", limit)
	}
}

func TestHandleFetchDataMissingSource(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	result, err := ts.handleFetchData(context.Background(), newCallToolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCalculate(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	result, err := ts.handleCalculate(context.Background(), newCallToolRequest(map[string]interface{}{
		"expression": "2 + 2",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "4", resultText(t, result))
}

func TestHandleCalculateInvalidExpression(t *testing.T) {
	ts := &transportServer{transport: "stdio"}

	result, err := ts.handleCalculate(context.Background(), newCallToolRequest(map[string]interface{}{
		"expression": "__import__('os')",
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid characters")
}

func TestHandleServerStatsResource(t *testing.T) {
	ts := &transportServer{transport: "sse"}

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "stats://server"

	contents, err := ts.handleServerStatsResource(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)

	var stats struct {
		Platform  string `json:"platform"`
		GoVersion string `json:"go_version"`
		Transport string `json:"transport"`
		ProcessID int    `json:"process_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &stats))

	assert.NotEmpty(t, stats.Platform)
	assert.NotEmpty(t, stats.GoVersion)
	assert.Equal(t, "sse", stats.Transport)
	assert.NotZero(t, stats.ProcessID)
}
