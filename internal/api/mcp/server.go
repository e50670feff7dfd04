package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/mathd/internal/domain/service"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/mathd/internal/shared/id"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// Server exposes every registry tool over the Model Context Protocol
type Server struct {
	mcp      *server.MCPServer
	registry *service.Registry
	logger   *zap.Logger
}

// NewServer registers one MCP tool per advertised registry tool
func NewServer(registry *service.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp: server.NewMCPServer(
			types.ServerName,
			types.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		registry: registry,
		logger:   logger,
	}

	for _, tool := range registry.Tools() {
		s.mcp.AddTool(Tool(tool), s.handler(tool.ID))
	}
	return s
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in/out until ctx is cancelled or in closes. Logs
// never touch out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("serving MCP over stdio", zap.Int("tools", len(s.registry.Tools())))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

// Tool converts an advertised tool into its MCP schema
func Tool(tool types.Tool) mcpgo.Tool {
	opts := []mcpgo.ToolOption{
		mcpgo.WithDescription(tool.Description),
		mcpgo.WithTitleAnnotation(tool.Name),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithIdempotentHintAnnotation(tool.ID != "random"),
		mcpgo.WithOpenWorldHintAnnotation(false),
	}

	for _, p := range tool.Parameters {
		props := []mcpgo.PropertyOption{mcpgo.Description(p.Description)}
		if p.Required {
			props = append(props, mcpgo.Required())
		}

		switch p.Type {
		case "array":
			props = append(props, mcpgo.Items(map[string]any{"type": p.Items}))
			opts = append(opts, mcpgo.WithArray(p.Name, props...))
		case "string":
			if len(p.Enum) > 0 {
				props = append(props, mcpgo.Enum(p.Enum...))
			}
			opts = append(opts, mcpgo.WithString(p.Name, props...))
		default:
			opts = append(opts, mcpgo.WithNumber(p.Name, props...))
		}
	}

	return mcpgo.NewTool(tool.ID, opts...)
}

// handler answers a tool call with the JSON value, or an error result
// carrying the JSON error report
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		ctx = tracing.WithRequestID(ctx, id.NewCallID().String())
		result := s.registry.Execute(ctx, name, req.Params.Arguments)
		return Render(result), nil
	}
}

// Render converts a registry result into MCP content
func Render(result *types.Result) *mcpgo.CallToolResult {
	if result.Success {
		text, err := sonic.MarshalString(result.Value)
		if err != nil {
			return mcpgo.NewToolResultError(fmt.Sprintf(`{"kind":%q,"message":%q}`,
				types.ErrInternalComputationError, "unencodable result: "+err.Error()))
		}
		return mcpgo.NewToolResultText(text)
	}

	text, err := sonic.MarshalString(result.Error)
	if err != nil {
		text = fmt.Sprintf(`{"kind":%q,"message":%q}`, result.Error.Kind, result.Error.Message)
	}
	return mcpgo.NewToolResultError(text)
}
