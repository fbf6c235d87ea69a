// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Laguz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/laguz/internal/docstore"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/storage"
)

// Server wraps the MCP server with Laguz tools.
type Server struct {
	mcp   *server.MCPServer
	repo  *docstore.Repository
	idx   index.DocumentIndex
	store storage.Provider
}

// New creates a new MCP server with all Laguz tools registered.
func New(repo *docstore.Repository, idx index.DocumentIndex, store storage.Provider) *Server {
	s := &Server{repo: repo, idx: idx, store: store}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_checklists",
		mcp.WithDescription("List all checklists of a user, own and shared, in display order."),
		mcp.WithString("username", mcp.Description("User whose checklists to list (default: default)")),
	), s.listChecklists)

	s.mcp.AddTool(mcp.NewTool("read_checklist",
		mcp.WithDescription("Read one checklist with all items and task metadata."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Checklist id (sanitized filename stem)")),
		mcp.WithString("category", mcp.Description("Category path (empty for root level)")),
		mcp.WithString("username", mcp.Description("Owner of the checklist (default: default)")),
	), s.readChecklist)

	s.mcp.AddTool(mcp.NewTool("create_checklist",
		mcp.WithDescription("Create a new checklist. The file is stored in the canonical "+
			"markdown checklist format; read it first via the get_document_contract tool "+
			"or the laguz://checklist-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Checklist title")),
		mcp.WithString("type", mcp.Description("Checklist type: simple or task (default simple)")),
		mcp.WithString("category", mcp.Description("Category path (created on demand)")),
		mcp.WithString("username", mcp.Description("Owner (default: default)")),
	), s.createChecklist)

	s.mcp.AddTool(mcp.NewTool("convert_checklist",
		mcp.WithDescription("Convert a checklist between simple and task types. "+
			"Converting to simple discards statuses and tracked time."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Checklist id")),
		mcp.WithString("target_type", mcp.Required(), mcp.Description("Target type: simple or task")),
		mcp.WithString("category", mcp.Description("Category path")),
		mcp.WithString("username", mcp.Description("Owner (default: default)")),
	), s.convertChecklist)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes of a user, own and shared, in display order."),
		mcp.WithString("username", mcp.Description("User whose notes to list (default: default)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read one note's title and markdown content."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id (sanitized filename stem)")),
		mcp.WithString("category", mcp.Description("Category path (empty for root level)")),
		mcp.WithString("username", mcp.Description("Owner of the note (default: default)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new markdown note. The filename is derived from the title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Markdown body")),
		mcp.WithString("category", mcp.Description("Category path (created on demand)")),
		mcp.WithString("username", mcp.Description("Owner (default: default)")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("task_summary",
		mcp.WithDescription("Item counts per workflow status plus total tracked time "+
			"across a user's task checklists."),
		mcp.WithString("username", mcp.Description("User to summarize (default: default)")),
	), s.taskSummary)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical Laguz checklist file format contract. "+
			"Call this before creating or editing checklist files directly."),
	), s.getDocumentContract)

	s.mcp.AddTool(mcp.NewTool("upload_asset",
		mcp.WithDescription("Download a file from a URL (or decode a base64 data: URI) and "+
			"store it in the user's image staging directory. Returns a markdownImage field "+
			"ready to paste into a note body."),
		mcp.WithString("url", mcp.Required(), mcp.Description("http(s) URL or data: URI of the asset")),
		mcp.WithString("filename", mcp.Description("Optional filename override")),
		mcp.WithString("username", mcp.Description("Owner of the staging directory (default: default)")),
	), s.uploadAsset)

	// Resource: checklist format contract.
	s.mcp.AddResource(
		mcp.NewResource("laguz://checklist-format", "Checklist Format Contract",
			mcp.WithResourceDescription("Canonical markdown format for checklist files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func username(req mcp.CallToolRequest) string {
	if u, err := req.RequireString("username"); err == nil && u != "" {
		return u
	}
	return "default"
}

func optString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listChecklists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lists, err := s.repo.ListChecklists(ctx, username(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(lists), nil
}

func (s *Server) readChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.repo.GetChecklist(ctx, username(req), optString(req, "category"), id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(c), nil
}

func (s *Server) createChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ := models.ChecklistType(optString(req, "type"))
	if typ != "" && typ != models.TypeSimple && typ != models.TypeTask {
		return mcp.NewToolResultError(fmt.Sprintf("unknown checklist type: %s", typ)), nil
	}
	c, err := s.repo.CreateChecklist(ctx, username(req), title, typ, optString(req, "category"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c), nil
}

func (s *Server) convertChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.repo.ConvertChecklist(ctx, username(req), optString(req, "category"), id,
		models.ChecklistType(target))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.repo.ListNotes(ctx, username(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(notes), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.repo.GetNote(ctx, username(req), optString(req, "category"), id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(n), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.repo.CreateNote(ctx, username(req), title, optString(req, "content"),
		optString(req, "category"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n), nil
}

func (s *Server) taskSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user := username(req)
	summary, err := s.idx.TaskSummary(user)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tracked, err := s.idx.TimeTotal(user)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"taskSummary":         summary,
		"totalTrackedSeconds": tracked,
	}), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ChecklistFormatContract), nil
}

func (s *Server) readContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "laguz://checklist-format",
			MIMEType: "text/markdown",
			Text:     ChecklistFormatContract,
		},
	}, nil
}
