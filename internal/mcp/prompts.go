package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// setupPrompts registers the text-template generators.
func (s *Server) setupPrompts() {
	taskReviewPrompt := mcp.NewPrompt("task_review",
		mcp.WithPromptDescription("Generate a prompt for reviewing pending tasks"),
	)
	s.mcpServer.AddPrompt(taskReviewPrompt, s.handleTaskReviewPrompt)

	dailySummaryPrompt := mcp.NewPrompt("daily_summary",
		mcp.WithPromptDescription("Generate a daily summary prompt"),
	)
	s.mcpServer.AddPrompt(dailySummaryPrompt, s.handleDailySummaryPrompt)
}

func (s *Server) handleTaskReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pending := s.store.Pending()

	var text string
	if len(pending) == 0 {
		text = "Great job! All tasks are completed."
	} else {
		var b strings.Builder
		b.WriteString("**Pending Tasks Review**\n\n")
		fmt.Fprintf(&b, "You have %d pending tasks:\n\n", len(pending))
		for _, task := range pending {
			fmt.Fprintf(&b, "- **%s** (ID: %d)\n", task.Title, task.ID)
			fmt.Fprintf(&b, "  %s\n", task.Description)
			if len(task.Tags) > 0 {
				fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(task.Tags, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\nWhat would you like to work on?")
		text = b.String()
	}

	return mcp.NewGetPromptResult("Pending Tasks Review", []mcp.PromptMessage{
		{
			Role: mcp.RoleUser,
			Content: mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}), nil
}

func (s *Server) handleDailySummaryPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	stats := s.store.Stats()

	var b strings.Builder
	b.WriteString("**Daily Task Summary**\n\n")
	fmt.Fprintf(&b, "- Total Tasks: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Completed: %d\n", stats.Completed)
	fmt.Fprintf(&b, "- Pending: %d\n", stats.Pending)
	fmt.Fprintf(&b, "- Active Tags: %s\n\n", strings.Join(stats.Tags, ", "))

	if stats.Pending > 0 {
		b.WriteString("You still have pending tasks. Would you like to review them?")
	} else {
		b.WriteString("All tasks completed! Time to add new ones?")
	}

	return mcp.NewGetPromptResult("Daily Task Summary", []mcp.PromptMessage{
		{
			Role: mcp.RoleUser,
			Content: mcp.TextContent{
				Type: "text",
				Text: b.String(),
			},
		},
	}), nil
}
