package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/intake"
	"github.com/spigell/cv-analyzer/internal/store"
)

const serverName = "cv-analyzer"

type analysisStore interface {
	Insert(ctx context.Context, p *cvanalysis.Profile, rawText string, resumeID *int64) (*store.Record, error)
	Get(ctx context.Context, id int64) (*store.Record, error)
}

// Server exposes the cv analyzer as MCP tools.
type Server struct {
	analyzer *cvanalysis.Analyzer
	store    analysisStore
	logger   *zap.Logger
}

// New creates a tool server. history may be nil, in which case saving and lookups are rejected.
func New(analyzer *cvanalysis.Analyzer, history analysisStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = cvanalysis.NewAnalyzer(logger)
	}
	return &Server{analyzer: analyzer, store: history, logger: logger}
}

// MCPServer builds the MCP server with all tools registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer(serverName, version)

	analyzeTool := mcp.NewTool("analyze_cv",
		mcp.WithDescription("Extract a structured profile (contacts, skills, expertise, job titles, experience, education, summary) from raw CV text"),
	)
	analyzeTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"cv_text":   map[string]interface{}{"type": "string", "description": "Raw CV text"},
			"save":      map[string]interface{}{"type": "boolean", "description": "Store the result in the analysis history"},
			"resume_id": map[string]interface{}{"type": []string{"integer", "string"}, "description": "Positive resume id to link the stored analysis to (optional)"},
		},
		Required: []string{"cv_text"},
	}
	srv.AddTool(analyzeTool, s.handleAnalyze)

	getTool := mcp.NewTool("get_analysis",
		mcp.WithDescription("Read a stored cv analysis by id"),
	)
	getTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id": map[string]interface{}{"type": "integer", "description": "Analysis id"},
		},
		Required: []string{"id"},
	}
	srv.AddTool(getTool, s.handleGet)

	return srv
}

// ServeStdio runs the MCP server over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio(version string) error {
	s.logger.Info("mcp server listening on stdio", zap.String("version", version))
	return server.ServeStdio(s.MCPServer(version))
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	text, _ := args["cv_text"].(string)

	profile, err := s.analyzer.Analyze(text)
	var invalid *cvanalysis.InvalidInputError
	if errors.As(err, &invalid) {
		return mcp.NewToolResultError(invalid.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze cv: %v", err)), nil
	}

	resumeID, err := intake.ParseResumeID(args["resume_id"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	save, _ := args["save"].(bool)
	if !save {
		return jsonResult(profile)
	}

	if s.store == nil {
		return mcp.NewToolResultError("history store is not configured"), nil
	}

	rec, err := s.store.Insert(ctx, profile, strings.TrimSpace(text), resumeID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save analysis: %v", err)), nil
	}

	return jsonResult(rec)
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	if s.store == nil {
		return mcp.NewToolResultError("history store is not configured"), nil
	}

	v, ok := args["id"].(float64)
	if !ok || v <= 0 || v != float64(int64(v)) {
		return mcp.NewToolResultError("id must be a positive integer"), nil
	}

	rec, err := s.store.Get(ctx, int64(v))
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("analysis %d not found", int64(v))), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read analysis: %v", err)), nil
	}

	return jsonResult(rec)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
