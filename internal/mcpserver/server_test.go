package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/venlow/laguz/internal/notes"
	"github.com/venlow/laguz/internal/syncer"
	"github.com/venlow/laguz/internal/testutil"
	"github.com/venlow/laguz/internal/vecstore"
)

func newTestServer(t *testing.T) (*Server, *testutil.FakeRunner, *testutil.MemIndex) {
	t.Helper()
	runner := testutil.NewFakeRunner()
	idx := testutil.NewMemIndex()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sync := syncer.New(notes.NewOps(runner), func() (vecstore.Index, error) { return idx, nil }, logger)
	return New(notes.NewOps(runner), sync), runner, idx
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is not text: %T", res.Content[0])
	}
	return tc.Text
}

func TestListAllNotes(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses["get name of every note"] = "alpha, beta"

	res, err := s.listAllNotes(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := resultText(t, res)
	want := "Found 2 notes:\n- alpha\n- beta"
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestCreateNote_DefaultFolder(t *testing.T) {
	s, runner, _ := newTestServer(t)
	script := `make new note at folder "Notes" with properties {name:"Groceries", body:"milk"}`
	runner.Responses[script] = ""

	res, err := s.createNote(context.Background(), callReq(map[string]any{
		"name": "Groceries",
		"body": "milk",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := resultText(t, res)
	if got != "Note 'Groceries' created successfully in folder 'Notes'" {
		t.Errorf("text = %q", got)
	}
	if len(runner.Calls) != 1 || runner.Calls[0] != script {
		t.Errorf("calls = %v", runner.Calls)
	}
}

func TestCreateNote_MissingName(t *testing.T) {
	s, _, _ := newTestServer(t)

	res, err := s.createNote(context.Background(), callReq(map[string]any{"body": "x"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("missing required argument did not produce a tool error")
	}
}

func TestReadNote_SourceErrorIsToolError(t *testing.T) {
	s, _, _ := newTestServer(t)

	// Unscripted commands fail, standing in for a source failure.
	res, err := s.readNote(context.Background(), callReq(map[string]any{"note_name": "Ghost"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("source failure did not produce a tool error")
	}
}

func TestCountNotes(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses["count notes"] = "12"

	res, err := s.countNotes(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "Total notes: 12" {
		t.Errorf("text = %q", got)
	}
}

func TestSearchNotes_NoMatches(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses[`get name of every note whose body contains "quantum"`] = ""

	res, err := s.searchNotes(context.Background(), callReq(map[string]any{"keyword": "quantum"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "No notes found containing 'quantum'" {
		t.Errorf("text = %q", got)
	}
}

func TestGetNoteProperties_SortedOutput(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses[`get properties of note "Plan"`] = "{name:Plan, id:x-coredata://42, container:folder Work}"

	res, err := s.getNoteProperties(context.Background(), callReq(map[string]any{"note_name": "Plan"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := resultText(t, res)
	if !strings.HasPrefix(got, "Properties for note 'Plan':\n") {
		t.Fatalf("text = %q", got)
	}
	// Keys must render in sorted order regardless of record order.
	body := strings.TrimPrefix(got, "Properties for note 'Plan':\n")
	want := "container: folder Work\nid: x-coredata://42\nname: Plan"
	if body != want {
		t.Errorf("properties = %q, want %q", body, want)
	}
}

func TestListAllFolders(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses["get name of every folder"] = "Notes, Work"

	res, err := s.listAllFolders(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := resultText(t, res)
	if !strings.Contains(got, "- Notes") || !strings.Contains(got, "- Work") {
		t.Errorf("text = %q", got)
	}
}

func TestIndexNotesInFolder_Empty(t *testing.T) {
	s, runner, idx := newTestServer(t)
	runner.Responses[`get name of every note of folder "Work"`] = ""

	res, err := s.indexNotesInFolder(context.Background(), callReq(map[string]any{"folder_name": "Work"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "Indexed 0 notes in folder 'Work'." {
		t.Errorf("text = %q", got)
	}
	if len(idx.Upserts) != 0 {
		t.Errorf("upserts = %v", idx.Upserts)
	}
}

func TestIndexNotesInFolder_IndexesStaleNotes(t *testing.T) {
	s, runner, idx := newTestServer(t)
	runner.Responses[`get name of every note of folder "Work"`] = "Plan"
	runner.Responses[`get id of note "Plan"`] = "x-coredata://1"
	runner.Responses[`get modification date of note "Plan"`] = "Monday, January 5, 2026 at 10:00:00"
	runner.Responses[`get body of note "Plan"`] = "the plan"
	runner.Responses[`get creation date of note "Plan"`] = "Monday, January 5, 2026 at 09:00:00"

	res, err := s.indexNotesInFolder(context.Background(), callReq(map[string]any{"folder_name": "Work"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "Indexed 1 notes in folder 'Work'." {
		t.Errorf("text = %q", got)
	}
	if len(idx.Upserts) != 1 || idx.Upserts[0].Folder != "Work" {
		t.Errorf("upserts = %+v", idx.Upserts)
	}
}

func TestReindexNotes_ScopeInMessage(t *testing.T) {
	s, runner, _ := newTestServer(t)
	runner.Responses[`get name of every note of folder "Work"`] = ""

	res, err := s.reindexNotes(context.Background(), callReq(map[string]any{"folder_name": "Work"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "Reindexed 0 notes in folder 'Work'." {
		t.Errorf("text = %q", got)
	}
}

func TestSearchNotesVector(t *testing.T) {
	s, _, idx := newTestServer(t)
	idx.Results = []vecstore.SearchResult{
		{Name: "Plan", Folder: "Work", NoteID: "n1", Distance: 0.1234},
		{Name: "Ideas", Folder: "Work", NoteID: "n2", Distance: 0.5678},
	}

	res, err := s.searchNotesVector(context.Background(), callReq(map[string]any{
		"query":       "project planning",
		"folder_name": "Work",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := resultText(t, res)
	want := "Found 2 results:\n- Plan (folder: Work, score: 0.1234)\n- Ideas (folder: Work, score: 0.5678)"
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if idx.LastSearch.Limit != syncer.DefaultSearchLimit {
		t.Errorf("limit = %d, want default %d", idx.LastSearch.Limit, syncer.DefaultSearchLimit)
	}
	if idx.LastSearch.Folder != "Work" {
		t.Errorf("folder = %q", idx.LastSearch.Folder)
	}
}

func TestSearchNotesVector_NoResults(t *testing.T) {
	s, _, _ := newTestServer(t)

	res, err := s.searchNotesVector(context.Background(), callReq(map[string]any{"query": "anything"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := resultText(t, res); got != "No vector search results found." {
		t.Errorf("text = %q", got)
	}
}
