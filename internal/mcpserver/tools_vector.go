package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/venlow/laguz/internal/syncer"
)

func (s *Server) indexNotesInFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	indexed, err := s.sync.IndexFolder(ctx, folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Indexed %d notes in folder '%s'.", indexed, folder)), nil
}

func (s *Server) reindexNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := req.GetString("folder_name", "")

	reindexed, err := s.sync.ReindexUpdated(ctx, folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	scope := ""
	if folder != "" {
		scope = fmt.Sprintf(" in folder '%s'", folder)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reindexed %d notes%s.", reindexed, scope)), nil
}

func (s *Server) searchNotesVector(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", syncer.DefaultSearchLimit)
	folder := req.GetString("folder_name", "")

	results, err := s.sync.Search(ctx, query, limit, folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No vector search results found."), nil
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("- %s (folder: %s, score: %.4f)", r.Name, r.Folder, r.Distance)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d results:\n%s", len(results), strings.Join(lines, "\n"))), nil
}
