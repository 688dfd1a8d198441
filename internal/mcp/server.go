// Package mcp exposes item search, share-token decoding, the saved build
// list and the assistant as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/library"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Deps are the components behind the tools. Library may be nil, which
// leaves out list_builds.
type Deps struct {
	Searcher *catalog.Searcher
	Defaults catalog.Defaults
	Gateway  *assistant.Gateway
	Library  *library.Library
	Logger   *zap.Logger
}

// Server wraps an MCP server.
type Server struct {
	Deps
	mcp *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Server{Deps: deps}

	s.mcp = server.NewMCPServer(
		"poe2genie",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchItemsTool, s.handleSearchItems)
	s.mcp.AddTool(decodeBuildTool, s.handleDecodeBuild)
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
	if s.Library != nil {
		s.mcp.AddTool(listBuildsTool, s.handleListBuilds)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
