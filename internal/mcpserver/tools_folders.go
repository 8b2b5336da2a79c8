package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) listAllFolders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.ops.ListFolders(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d folders:%s", len(names), bulletList(names))), nil
}

func (s *Server) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ops.CreateFolder(ctx, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Folder '%s' created successfully", name)), nil
}

func (s *Server) deleteFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ops.DeleteFolder(ctx, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Folder '%s' deleted successfully", name)), nil
}

func (s *Server) countNotesInFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.ops.CountNotesInFolder(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Folder '%s' contains %d notes", name, n)), nil
}

func (s *Server) getFolderProperties(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	props, err := s.ops.FolderProperties(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Properties for folder '%s':\n%s", name, formatRecord(props))), nil
}

func (s *Server) listAllAccounts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.ops.ListAccounts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d accounts:%s", len(names), bulletList(names))), nil
}

func (s *Server) getDefaultAccount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := s.ops.DefaultAccount(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Default account: %s", account)), nil
}

func (s *Server) listFoldersInAccount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := req.RequireString("account_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := s.ops.ListFoldersInAccount(ctx, account)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d folders in account '%s':%s", len(names), account, bulletList(names))), nil
}
