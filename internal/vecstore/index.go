package vecstore

import "context"

// Index defines the interface for vector index operations. Consumers should
// depend on this interface rather than the concrete *Store type to
// facilitate testing with fakes.
type Index interface {
	IndexMap(folder string) (map[string]IndexEntry, error)
	Upsert(ctx context.Context, n NoteRow) error
	Search(ctx context.Context, query string, limit int, folder string) ([]SearchResult, error)
	Close() error
}

// Verify *Store satisfies Index at compile time.
var _ Index = (*Store)(nil)
