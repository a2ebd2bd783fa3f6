// Package mcptools exposes the assistant as MCP tools over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/cloudflex/assistant/internal/interview"
	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxResumeChars bounds the text accepted by the resume tools.
const maxResumeChars = 200000

// Tools holds what the tool handlers read from.
type Tools struct {
	responder *chatbot.Responder
	tables    *knowledge.Tables
}

// New creates the tool set. A nil responder answers from the default rules and tables.
func New(responder *chatbot.Responder) *Tools {
	if responder == nil {
		responder = chatbot.NewDefaultResponder()
	}
	return &Tools{responder: responder, tables: responder.Tables()}
}

// NewServer returns an MCP server with every tool registered.
func NewServer(version string, t *Tools) *server.MCPServer {
	s := server.NewMCPServer("cloudflex-assistant", version)
	t.Register(s)
	return s
}

// Serve runs the MCP server on stdin/stdout until the client disconnects.
func Serve(version string, t *Tools) error {
	return server.ServeStdio(NewServer(version, t))
}

// Register adds the tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	askTool := mcp.NewTool("ask_assistant",
		mcp.WithDescription("Answer a visitor question about CloudFlex IT Solutions jobs, services, visas or pricing"),
	)
	askTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"message": map[string]interface{}{"type": "string", "description": "The visitor's message"},
		},
		Required: []string{"message"},
	}
	s.AddTool(askTool, t.handleAsk)

	jobsTool := mcp.NewTool("list_jobs",
		mcp.WithDescription("List open positions at CloudFlex IT Solutions"),
	)
	jobsTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"remote_only": map[string]interface{}{"type": "boolean", "description": "Only include remote-friendly positions"},
		},
	}
	s.AddTool(jobsTool, t.handleListJobs)

	scoreTool := mcp.NewTool("score_resume",
		mcp.WithDescription("Score resume text and return the analysis as JSON"),
	)
	scoreTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{"type": "string", "description": "Plain-text resume content"},
		},
		Required: []string{"text"},
	}
	s.AddTool(scoreTool, t.handleScoreResume)

	interviewTool := mcp.NewTool("generate_interview",
		mcp.WithDescription("Generate mock interview questions tailored to resume text"),
	)
	interviewTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{"type": "string", "description": "Plain-text resume content; empty gives general questions"},
		},
	}
	s.AddTool(interviewTool, t.handleGenerateInterview)
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, true
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func (t *Tools) handleAsk(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	message, _ := args["message"].(string)
	if strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("message is required"), nil
	}
	return mcp.NewToolResultText(t.responder.Respond(message).Text), nil
}

func (t *Tools) handleListJobs(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	jobs := t.tables.ListJobs()
	if remoteOnly, _ := args["remote_only"].(bool); remoteOnly {
		jobs = t.tables.RemoteJobs()
	}
	return jsonResult(map[string]any{"jobs": jobs, "count": len(jobs)})
}

func (t *Tools) handleScoreResume(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	if len(text) > maxResumeChars {
		return mcp.NewToolResultError(fmt.Sprintf("text exceeds %d characters", maxResumeChars)), nil
	}
	return jsonResult(scoring.Analyze(text))
}

func (t *Tools) handleGenerateInterview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, _ := args["text"].(string)
	if len(text) > maxResumeChars {
		return mcp.NewToolResultError(fmt.Sprintf("text exceeds %d characters", maxResumeChars)), nil
	}

	analysis, questions, fallback := interview.Prepare(text)
	return jsonResult(map[string]any{
		"analysis":  analysis,
		"questions": questions,
		"fallback":  fallback,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
