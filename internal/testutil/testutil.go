// Package testutil provides shared fakes for the scripting bridge and the
// vector index.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/venlow/laguz/internal/applescript"
	"github.com/venlow/laguz/internal/vecstore"
)

// FakeRunner returns scripted responses keyed by command text.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Calls     []string
}

// NewFakeRunner creates an empty scripted runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// Run records the command and returns the scripted response for its text.
// An unscripted command is an error so tests fail loudly on drift.
func (f *FakeRunner) Run(_ context.Context, cmd applescript.Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd.Text)
	if err, ok := f.Errors[cmd.Text]; ok {
		return "", err
	}
	if out, ok := f.Responses[cmd.Text]; ok {
		return out, nil
	}
	return "", fmt.Errorf("unscripted command: %s", cmd.Text)
}

// MemIndex is an in-memory vecstore.Index for synchronizer tests.
type MemIndex struct {
	Entries   map[string]vecstore.IndexEntry
	Upserts   []vecstore.NoteRow
	Results   []vecstore.SearchResult
	UpsertErr func(n vecstore.NoteRow) error
	Closed    bool

	// LastSearch records the arguments of the most recent Search call.
	LastSearch struct {
		Query  string
		Limit  int
		Folder string
	}
}

// Verify MemIndex satisfies vecstore.Index at compile time.
var _ vecstore.Index = (*MemIndex)(nil)

// NewMemIndex creates an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{Entries: make(map[string]vecstore.IndexEntry)}
}

// IndexMap returns a copy of the stored entries.
func (m *MemIndex) IndexMap(folder string) (map[string]vecstore.IndexEntry, error) {
	out := make(map[string]vecstore.IndexEntry, len(m.Entries))
	for k, v := range m.Entries {
		out[k] = v
	}
	return out, nil
}

// Upsert records the row and marks the note as freshly indexed.
func (m *MemIndex) Upsert(_ context.Context, n vecstore.NoteRow) error {
	if m.UpsertErr != nil {
		if err := m.UpsertErr(n); err != nil {
			return err
		}
	}
	m.Upserts = append(m.Upserts, n)
	m.Entries[n.NoteID] = vecstore.IndexEntry{
		IndexedAt: n.ModifiedTS + 1,
		Version:   vecstore.IndexVersion,
	}
	return nil
}

// Search returns the canned results.
func (m *MemIndex) Search(_ context.Context, query string, limit int, folder string) ([]vecstore.SearchResult, error) {
	m.LastSearch.Query = query
	m.LastSearch.Limit = limit
	m.LastSearch.Folder = folder
	if limit < len(m.Results) {
		return m.Results[:limit], nil
	}
	return m.Results, nil
}

// Close marks the handle closed.
func (m *MemIndex) Close() error {
	m.Closed = true
	return nil
}
