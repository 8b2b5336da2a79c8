// Package syncer keeps the vector store in step with the external note
// source: it decides which notes are stale, reembeds them, and answers
// similarity queries scoped by folder.
package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/venlow/laguz/internal/notes"
	"github.com/venlow/laguz/internal/vecstore"
)

// DefaultSearchLimit caps result counts when callers pass none.
const DefaultSearchLimit = 5

// OpenStore acquires a store handle. The synchronizer opens one at the start
// of each public operation and closes it when the operation finishes, so
// migration-on-open runs every time.
type OpenStore func() (vecstore.Index, error)

// Synchronizer coordinates the note source and the vector store.
type Synchronizer struct {
	source notes.Source
	open   OpenStore
	logger *slog.Logger
}

// New creates a synchronizer.
func New(source notes.Source, open OpenStore, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{source: source, open: open, logger: logger}
}

// needsReindex applies the staleness rules: a note must be (re)embedded when
// it has no stored entry, when the stored entry was produced by older
// indexing logic, or when the source modified it after it was last indexed.
func needsReindex(entry *vecstore.IndexEntry, modifiedTS float64) bool {
	return entry == nil ||
		entry.Version < vecstore.IndexVersion ||
		modifiedTS > entry.IndexedAt
}

// IndexFolder brings every note in folder up to date and returns the number
// of notes actually upserted. An empty folder returns 0 without touching
// the store. Per-note failures are logged and skipped; they never abort the
// remaining notes.
func (s *Synchronizer) IndexFolder(ctx context.Context, folder string) (int, error) {
	s.logger.Info("indexing folder", slog.String("folder", folder))

	names, err := s.source.ListInFolder(ctx, folder)
	if err != nil {
		return 0, fmt.Errorf("list notes in folder %q: %w", folder, err)
	}
	if len(names) == 0 {
		s.logger.Warn("no notes found in folder", slog.String("folder", folder))
		return 0, nil
	}

	store, err := s.open()
	if err != nil {
		return 0, err
	}
	defer store.Close()

	indexed, skipped, err := s.syncNotes(ctx, store, names, folder, folder)
	if err != nil {
		return 0, err
	}

	s.logger.Info("indexing complete",
		slog.String("folder", folder),
		slog.Int("indexed", indexed),
		slog.Int("skipped", skipped))
	return indexed, nil
}

// ReindexUpdated refreshes notes modified since they were last indexed.
// With an empty folder the candidate set is every note in the source.
func (s *Synchronizer) ReindexUpdated(ctx context.Context, folder string) (int, error) {
	scope := folder
	if scope == "" {
		scope = "all notes"
	}
	s.logger.Info("reindexing updated notes", slog.String("scope", scope))

	store, err := s.open()
	if err != nil {
		return 0, err
	}
	defer store.Close()

	var names []string
	if folder != "" {
		names, err = s.source.ListInFolder(ctx, folder)
	} else {
		names, err = s.source.ListAll(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("list notes: %w", err)
	}

	reindexed, skipped, err := s.syncNotes(ctx, store, names, folder, folder)
	if err != nil {
		return 0, err
	}

	s.logger.Info("reindexing complete",
		slog.String("scope", scope),
		slog.Int("reindexed", reindexed),
		slog.Int("skipped", skipped))
	return reindexed, nil
}

// syncNotes walks names sequentially, applying the staleness check per note
// and upserting stale ones. folderScope limits the index map; folderHint is
// forwarded to the detail fetch. Returns (upserted, skipped).
func (s *Synchronizer) syncNotes(ctx context.Context, store vecstore.Index, names []string, folderScope, folderHint string) (int, int, error) {
	indexMap, err := store.IndexMap(folderScope)
	if err != nil {
		return 0, 0, err
	}

	indexed := 0
	skipped := 0
	for _, name := range names {
		id, err := s.source.ID(ctx, name)
		if err != nil {
			s.logger.Warn("sync: resolve id failed", slog.String("note", name), slog.String("error", err.Error()))
			continue
		}
		modifiedTS, err := s.source.ModificationTimestamp(ctx, name)
		if err != nil {
			s.logger.Warn("sync: modification time failed", slog.String("note", name), slog.String("error", err.Error()))
			continue
		}

		var entry *vecstore.IndexEntry
		if e, ok := indexMap[id]; ok {
			entry = &e
		}
		if !needsReindex(entry, modifiedTS) {
			s.logger.Debug("sync: up to date", slog.String("note", name))
			skipped++
			continue
		}

		rec, err := s.source.Details(ctx, name, folderHint)
		if err != nil {
			s.logger.Warn("sync: fetch details failed", slog.String("note", name), slog.String("error", err.Error()))
			continue
		}
		if err := store.Upsert(ctx, vecstore.NoteRow{
			NoteID:     rec.NoteID,
			Name:       rec.Name,
			Folder:     rec.Folder,
			Body:       rec.Body,
			CreatedTS:  rec.CreatedTS,
			ModifiedTS: rec.ModifiedTS,
		}); err != nil {
			s.logger.Warn("sync: upsert failed", slog.String("note", name), slog.String("error", err.Error()))
			continue
		}
		s.logger.Debug("sync: indexed", slog.String("note", name))
		indexed++
	}

	return indexed, skipped, nil
}

// Search embeds query through the store and returns ranked hits, optionally
// restricted to one folder. Failures propagate; there is no partial result.
func (s *Synchronizer) Search(ctx context.Context, query string, limit int, folder string) ([]vecstore.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	store, err := s.open()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Search(ctx, query, limit, folder)
}
