package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	return b.String()
}

func (s *Server) listAllNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.ops.ListAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d notes:%s", len(names), bulletList(names))), nil
}

func (s *Server) listNotesInFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := s.ops.ListInFolder(ctx, folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d notes in folder '%s':%s", len(names), folder, bulletList(names))), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body := req.GetString("body", "")
	folder := req.GetString("folder", "Notes")

	if err := s.ops.Create(ctx, name, body, folder); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note '%s' created successfully in folder '%s'", name, folder)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := s.ops.Read(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(body), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("new_body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ops.Update(ctx, name, body); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note '%s' updated successfully", name)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ops.Delete(ctx, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note '%s' deleted successfully", name)), nil
}

func (s *Server) moveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target_folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ops.Move(ctx, name, target); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note '%s' moved to folder '%s'", name, target)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := s.ops.SearchByKeyword(ctx, keyword)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No notes found containing '%s'", keyword)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d notes containing '%s':%s", len(names), keyword, bulletList(names))), nil
}

func (s *Server) countNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.ops.Count(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Total notes: %d", n)), nil
}

func (s *Server) getNoteCreationDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := s.ops.CreationDate(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Creation date of '%s': %s", name, date)), nil
}

func (s *Server) getNoteModificationDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := s.ops.ModificationDate(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Modification date of '%s': %s", name, date)), nil
}

func (s *Server) getNoteID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := s.ops.ID(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("ID of '%s': %s", name, id)), nil
}

func (s *Server) getNoteContainer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	folder, err := s.ops.Container(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note '%s' is in folder '%s'", name, folder)), nil
}

func (s *Server) getNoteProperties(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("note_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	props, err := s.ops.Properties(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Properties for note '%s':\n%s", name, formatRecord(props))), nil
}

// formatRecord renders a property map as sorted "key: value" lines.
func formatRecord(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + ": " + props[k]
	}
	return strings.Join(lines, "\n")
}
