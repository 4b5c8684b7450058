// Package mcp exposes topic exploration as MCP tools so AI agents can
// drive the explorer over stdio.
package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"topictrail/internal/history"
	"topictrail/internal/oracle"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Generator is the subset of the oracle used by the MCP tools.
type Generator interface {
	Answer(ctx context.Context, subject string) (oracle.Result, error)
	Art(ctx context.Context, subject string) (string, error)
}

// Server wraps an MCP server holding one shared navigation trail.
type Server struct {
	gen Generator

	mu    sync.Mutex
	trail *history.Trail

	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by the given generator.
func NewServer(gen Generator) *Server {
	s := &Server{
		gen:   gen,
		trail: history.New(),
	}

	s.mcp = server.NewMCPServer(
		"topictrail",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(exploreTopicTool, s.handleExploreTopic)
	s.mcp.AddTool(randomTopicTool, s.handleRandomTopic)
	s.mcp.AddTool(goBackTool, s.handleGoBack)
	s.mcp.AddTool(goForwardTool, s.handleGoForward)
	s.mcp.AddTool(topicArtTool, s.handleTopicArt)
	s.mcp.AddTool(showTrailTool, s.handleShowTrail)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
