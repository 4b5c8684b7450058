package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"topictrail/internal/oracle"
	"topictrail/internal/topic"
)

// handleExploreTopic fetches content for a topic and records it on the
// trail.
func (s *Server) handleExploreTopic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}
	subject = topic.Normalize(subject)
	if subject == "" {
		return mcp.NewToolResultError("topic must not be blank"), nil
	}

	s.mu.Lock()
	s.trail.Push(subject)
	s.mu.Unlock()

	return s.explore(ctx, subject)
}

// handleRandomTopic explores a random starter topic.
func (s *Server) handleRandomTopic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := topic.Random()

	s.mu.Lock()
	s.trail.Push(subject)
	s.mu.Unlock()

	return s.explore(ctx, subject)
}

// handleGoBack steps the trail back and re-explores the topic there.
func (s *Server) handleGoBack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	subject, ok := s.trail.Back()
	s.mu.Unlock()
	if !ok {
		return mcp.NewToolResultError("already at the start of the trail"), nil
	}
	return s.explore(ctx, subject)
}

// handleGoForward steps the trail forward and re-explores the topic there.
func (s *Server) handleGoForward(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	subject, ok := s.trail.Forward()
	s.mu.Unlock()
	if !ok {
		return mcp.NewToolResultError("already at the end of the trail"), nil
	}
	return s.explore(ctx, subject)
}

// handleTopicArt draws art without touching the trail. A generation
// failure degrades to the fallback box rather than an error.
func (s *Server) handleTopicArt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}
	subject = topic.Normalize(subject)
	if subject == "" {
		return mcp.NewToolResultError("topic must not be blank"), nil
	}

	art, err := s.gen.Art(ctx, subject)
	if err != nil {
		art = oracle.FallbackArt(subject)
	}
	return mcp.NewToolResultText(art), nil
}

// handleShowTrail renders the visited topics with the cursor marked.
func (s *Server) handleShowTrail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	topics := s.trail.Topics()
	cursor := s.trail.Cursor()
	s.mu.Unlock()

	if len(topics) == 0 {
		return mcp.NewToolResultText("The trail is empty. Use explore_topic to start."), nil
	}

	var sb strings.Builder
	for i, t := range topics {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%d. %s\n", marker, i+1, t)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// explore fetches an answer and formats it for agent consumption.
func (s *Server) explore(ctx context.Context, subject string) (*mcp.CallToolResult, error) {
	res, err := s.gen.Answer(ctx, subject)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("exploring %q failed: %v", subject, err)), nil
	}
	return mcp.NewToolResultText(formatAnswer(subject, res)), nil
}

// formatAnswer converts an answer into readable text.
func formatAnswer(subject string, res oracle.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", subject)
	sb.WriteString(res.Answer.Explanation)
	sb.WriteString("\n\nNext: ")
	sb.WriteString(res.Answer.Suggestion)

	if len(res.Answer.Links) > 0 {
		sb.WriteString("\n\nResources:\n")
		for _, l := range res.Answer.Links {
			fmt.Fprintf(&sb, "- %s: %s\n", l.Title, l.URL)
		}
	}
	return sb.String()
}
