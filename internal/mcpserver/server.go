// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Apple Notes operations and semantic search over stdio transport.
package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/venlow/laguz/internal/notes"
	"github.com/venlow/laguz/internal/syncer"
)

// Server wraps the MCP server with the note, folder, account, and vector
// search tools.
type Server struct {
	mcp  *server.MCPServer
	ops  *notes.Ops
	sync *syncer.Synchronizer
}

// New creates a new MCP server with all tools registered.
func New(ops *notes.Ops, sync *syncer.Synchronizer) *Server {
	s := &Server{ops: ops, sync: sync}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	// Note operations.
	s.mcp.AddTool(mcp.NewTool("list_all_notes",
		mcp.WithDescription("List all notes in Apple Notes."),
	), s.listAllNotes)

	s.mcp.AddTool(mcp.NewTool("list_notes_in_folder",
		mcp.WithDescription("List notes in a specific folder."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder to list notes from")),
	), s.listNotesInFolder)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the note to create")),
		mcp.WithString("body", mcp.Description("Body/content of the note")),
		mcp.WithString("folder", mcp.Description("Folder to create the note in (default: Notes)")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the content of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note to read")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Update a note's body content."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note to update")),
		mcp.WithString("new_body", mcp.Required(), mcp.Description("New body content for the note")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note to delete")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("move_note",
		mcp.WithDescription("Move a note to a different folder."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note to move")),
		mcp.WithString("target_folder", mcp.Required(), mcp.Description("Target folder name")),
	), s.moveNote)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search notes by content keyword."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Keyword to search for")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("count_notes",
		mcp.WithDescription("Get the total number of notes."),
	), s.countNotes)

	s.mcp.AddTool(mcp.NewTool("get_note_creation_date",
		mcp.WithDescription("Get the creation date of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note")),
	), s.getNoteCreationDate)

	s.mcp.AddTool(mcp.NewTool("get_note_modification_date",
		mcp.WithDescription("Get the modification date of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note")),
	), s.getNoteModificationDate)

	s.mcp.AddTool(mcp.NewTool("get_note_id",
		mcp.WithDescription("Get the ID of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note")),
	), s.getNoteID)

	s.mcp.AddTool(mcp.NewTool("get_note_container",
		mcp.WithDescription("Get the container (folder) of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note")),
	), s.getNoteContainer)

	s.mcp.AddTool(mcp.NewTool("get_note_properties",
		mcp.WithDescription("Get all properties of a note."),
		mcp.WithString("note_name", mcp.Required(), mcp.Description("Name of the note")),
	), s.getNoteProperties)

	// Folder operations.
	s.mcp.AddTool(mcp.NewTool("list_all_folders",
		mcp.WithDescription("List all folders in Apple Notes."),
	), s.listAllFolders)

	s.mcp.AddTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a new folder."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder to create")),
	), s.createFolder)

	s.mcp.AddTool(mcp.NewTool("delete_folder",
		mcp.WithDescription("Delete a folder."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder to delete")),
	), s.deleteFolder)

	s.mcp.AddTool(mcp.NewTool("count_notes_in_folder",
		mcp.WithDescription("Count notes in a folder."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder")),
	), s.countNotesInFolder)

	s.mcp.AddTool(mcp.NewTool("get_folder_properties",
		mcp.WithDescription("Get properties of a folder."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder")),
	), s.getFolderProperties)

	// Account operations.
	s.mcp.AddTool(mcp.NewTool("list_all_accounts",
		mcp.WithDescription("List all accounts in Apple Notes."),
	), s.listAllAccounts)

	s.mcp.AddTool(mcp.NewTool("get_default_account",
		mcp.WithDescription("Get the default account."),
	), s.getDefaultAccount)

	s.mcp.AddTool(mcp.NewTool("list_folders_in_account",
		mcp.WithDescription("List folders in a specific account."),
		mcp.WithString("account_name", mcp.Required(), mcp.Description("Name of the account")),
	), s.listFoldersInAccount)

	// Vector search operations.
	s.mcp.AddTool(mcp.NewTool("index_notes_in_folder",
		mcp.WithDescription("Index all notes in a folder for vector search."),
		mcp.WithString("folder_name", mcp.Required(), mcp.Description("Name of the folder to index")),
	), s.indexNotesInFolder)

	s.mcp.AddTool(mcp.NewTool("reindex_notes_since_last_index",
		mcp.WithDescription("Reindex notes updated since the last index."),
		mcp.WithString("folder_name", mcp.Description("Optional folder name to scope reindexing")),
	), s.reindexNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes_vector",
		mcp.WithDescription("Search notes using vector similarity."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results"), mcp.DefaultNumber(5)),
		mcp.WithString("folder_name", mcp.Description("Optional folder name to scope search")),
	), s.searchNotesVector)

	return s
}

// Listen serves MCP over stdin/stdout until ctx is cancelled or stdin
// closes.
func (s *Server) Listen(ctx context.Context) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}
