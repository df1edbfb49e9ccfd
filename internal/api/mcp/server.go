// Package mcp serves the tool surface over the Model Context Protocol's
// stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/clintrovert/octoscope/internal/tools"
)

// Server wraps an MCP stdio server around the shared tool registry.
type Server struct {
	mcpServer *server.MCPServer
	logger    *zap.Logger
}

// NewServer builds the MCP server and declares every registered tool on it.
// The schemas published here are the same ones the HTTP face serves from
// tools/list.
func NewServer(registry *tools.Registry, name, version string, logger *zap.Logger) (*Server, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, def := range registry.List() {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema for tool %s: %w", def.Name, err)
		}

		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, schema)
		s.AddTool(tool, toolHandler(registry, def.Name, logger))
	}

	return &Server{
		mcpServer: s,
		logger:    logger,
	}, nil
}

// toolHandler adapts a registry dispatch to the mcp-go handler contract.
// Rejections become tool-level error results rather than protocol errors,
// so hosts always receive a text payload.
func toolHandler(registry *tools.Registry, name string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := registry.Call(ctx, name, request.GetArguments())
		if err != nil {
			logger.Warn("tool call rejected",
				zap.String("tool", name),
				zap.Error(err),
			)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio serves MCP over stdin/stdout until the stream closes. Logging
// goes to stderr, so it never corrupts the protocol stream.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving mcp over stdio")
	return server.ServeStdio(s.mcpServer)
}
