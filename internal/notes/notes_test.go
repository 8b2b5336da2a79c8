package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/venlow/laguz/internal/apperr"
	"github.com/venlow/laguz/internal/testutil"
)

func TestListInFolder(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Responses[`get name of every note of folder "Work"`] = "Standup, Roadmap"

	ops := NewOps(r)
	names, err := ops.ListInFolder(context.Background(), "Work")
	if err != nil {
		t.Fatalf("ListInFolder: %v", err)
	}
	if len(names) != 2 || names[0] != "Standup" || names[1] != "Roadmap" {
		t.Errorf("names = %#v", names)
	}
}

func TestCreateEscapesQuotes(t *testing.T) {
	r := testutil.NewFakeRunner()
	want := `make new note at folder "Notes" with properties {name:"say \"hi\"", body:"b"}`
	r.Responses[want] = ""

	ops := NewOps(r)
	if err := ops.Create(context.Background(), `say "hi"`, "b", "Notes"); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCount_NonNumericIsZero(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Responses[`count notes`] = "missing value"

	ops := NewOps(r)
	n, err := ops.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestModificationTimestamp_UnparsableIsZero(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Responses[`get modification date of note "n"`] = "not a date"

	ops := NewOps(r)
	ts, err := ops.ModificationTimestamp(context.Background(), "n")
	if err != nil {
		t.Fatalf("ModificationTimestamp: %v", err)
	}
	if ts != 0 {
		t.Errorf("ts = %v, want 0", ts)
	}
}

func TestDetails_WithFolderHint(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Responses[`get id of note "Standup"`] = "x-coredata://note-1"
	r.Responses[`get body of note "Standup"`] = "agenda"
	r.Responses[`get creation date of note "Standup"`] = "Monday, January 5, 2026 at 9:00:00 AM"
	r.Responses[`get modification date of note "Standup"`] = "Monday, January 5, 2026 at 3:04:05 PM"

	ops := NewOps(r)
	rec, err := ops.Details(context.Background(), "Standup", "Work")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if rec.NoteID != "x-coredata://note-1" || rec.Body != "agenda" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Folder != "Work" {
		t.Errorf("folder = %q, want hint to win", rec.Folder)
	}
	if rec.CreatedTS == 0 || rec.ModifiedTS == 0 {
		t.Errorf("timestamps should parse: %+v", rec)
	}

	// The hint must suppress the container round-trip.
	for _, call := range r.Calls {
		if call == `get name of container of note "Standup"` {
			t.Error("container fetched despite folder hint")
		}
	}
}

func TestDetails_ResolvesContainerWithoutHint(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Responses[`get id of note "n"`] = "id-1"
	r.Responses[`get body of note "n"`] = "b"
	r.Responses[`get name of container of note "n"`] = "Inbox"
	r.Responses[`get creation date of note "n"`] = "x"
	r.Responses[`get modification date of note "n"`] = "x"

	ops := NewOps(r)
	rec, err := ops.Details(context.Background(), "n", "")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if rec.Folder != "Inbox" {
		t.Errorf("folder = %q, want Inbox", rec.Folder)
	}
}

func TestDetails_NotFoundPropagates(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Errors[`get id of note "gone"`] = apperr.ErrNotFound

	ops := NewOps(r)
	_, err := ops.Details(context.Background(), "gone", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
