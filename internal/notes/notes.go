// Package notes wraps the Apple Notes scripting surface: note, folder, and
// account operations expressed as single AppleScript round-trips.
package notes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/venlow/laguz/internal/applescript"
)

const app = "Notes"

// Record is the full representation of a note as reported by the source.
// Timestamps are unix seconds; an unparsable date is reported as 0.
type Record struct {
	NoteID     string
	Name       string
	Folder     string
	Body       string
	CreatedTS  float64
	ModifiedTS float64
}

// Source is the subset of operations the index synchronizer depends on.
type Source interface {
	ListAll(ctx context.Context) ([]string, error)
	ListInFolder(ctx context.Context, folder string) ([]string, error)
	ID(ctx context.Context, name string) (string, error)
	ModificationTimestamp(ctx context.Context, name string) (float64, error)
	Details(ctx context.Context, name, folderHint string) (*Record, error)
}

// Ops performs note operations through a script runner.
type Ops struct {
	runner applescript.Runner
}

// Verify Ops satisfies Source at compile time.
var _ Source = (*Ops)(nil)

// NewOps creates note operations over the given runner.
func NewOps(runner applescript.Runner) *Ops {
	return &Ops{runner: runner}
}

func (o *Ops) get(ctx context.Context, format string, args ...any) (string, error) {
	return o.runner.Run(ctx, applescript.Commandf(app, format, args...))
}

// ListAll returns the names of every note in the source.
func (o *Ops) ListAll(ctx context.Context) ([]string, error) {
	out, err := o.get(ctx, "get name of every note")
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}

// ListInFolder returns the names of every note in the given folder.
func (o *Ops) ListInFolder(ctx context.Context, folder string) ([]string, error) {
	out, err := o.get(ctx, "get name of every note of folder %s", applescript.Quote(folder))
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}

// Create makes a new note in the given folder.
func (o *Ops) Create(ctx context.Context, name, body, folder string) error {
	_, err := o.get(ctx, "make new note at folder %s with properties {name:%s, body:%s}",
		applescript.Quote(folder), applescript.Quote(name), applescript.Quote(body))
	return err
}

// Read returns the body of a note.
func (o *Ops) Read(ctx context.Context, name string) (string, error) {
	return o.get(ctx, "get body of note %s", applescript.Quote(name))
}

// Update replaces the body of a note.
func (o *Ops) Update(ctx context.Context, name, body string) error {
	_, err := o.get(ctx, "set body of note %s to %s", applescript.Quote(name), applescript.Quote(body))
	return err
}

// Delete removes a note.
func (o *Ops) Delete(ctx context.Context, name string) error {
	_, err := o.get(ctx, "delete note %s", applescript.Quote(name))
	return err
}

// Move relocates a note into the target folder.
func (o *Ops) Move(ctx context.Context, name, targetFolder string) error {
	_, err := o.get(ctx, "move note %s to folder %s", applescript.Quote(name), applescript.Quote(targetFolder))
	return err
}

// SearchByKeyword returns the names of notes whose body contains keyword.
func (o *Ops) SearchByKeyword(ctx context.Context, keyword string) ([]string, error) {
	out, err := o.get(ctx, "get name of every note whose body contains %s", applescript.Quote(keyword))
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}

// Count returns the total number of notes. Non-numeric output counts as 0.
func (o *Ops) Count(ctx context.Context) (int, error) {
	out, err := o.get(ctx, "count notes")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// CreationDate returns the raw creation date text of a note.
func (o *Ops) CreationDate(ctx context.Context, name string) (string, error) {
	return o.get(ctx, "get creation date of note %s", applescript.Quote(name))
}

// ModificationDate returns the raw modification date text of a note.
func (o *Ops) ModificationDate(ctx context.Context, name string) (string, error) {
	return o.get(ctx, "get modification date of note %s", applescript.Quote(name))
}

// ModificationTimestamp returns the modification time of a note as unix
// seconds. Date text that cannot be parsed yields 0 rather than an error.
func (o *Ops) ModificationTimestamp(ctx context.Context, name string) (float64, error) {
	out, err := o.ModificationDate(ctx, name)
	if err != nil {
		return 0, err
	}
	return applescript.ParseTimestamp(out), nil
}

// ID returns the identifier of a note.
func (o *Ops) ID(ctx context.Context, name string) (string, error) {
	return o.get(ctx, "get id of note %s", applescript.Quote(name))
}

// Container returns the name of the folder holding a note.
func (o *Ops) Container(ctx context.Context, name string) (string, error) {
	return o.get(ctx, "get name of container of note %s", applescript.Quote(name))
}

// Properties returns all properties of a note as a flat map.
func (o *Ops) Properties(ctx context.Context, name string) (map[string]string, error) {
	out, err := o.get(ctx, "get properties of note %s", applescript.Quote(name))
	if err != nil {
		return nil, err
	}
	return applescript.ParseRecord(out), nil
}

// Details resolves the full Record for a note. When folderHint is non-empty
// it is taken as the containing folder without an extra round-trip;
// otherwise the container is fetched from the source.
func (o *Ops) Details(ctx context.Context, name, folderHint string) (*Record, error) {
	id, err := o.ID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve id of %q: %w", name, err)
	}

	body, err := o.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read body of %q: %w", name, err)
	}

	folder := folderHint
	if folder == "" {
		folder, err = o.Container(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve folder of %q: %w", name, err)
		}
	}

	rec := &Record{NoteID: id, Name: name, Folder: folder, Body: body}

	if out, err := o.CreationDate(ctx, name); err == nil {
		rec.CreatedTS = applescript.ParseTimestamp(out)
	}
	if out, err := o.ModificationDate(ctx, name); err == nil {
		rec.ModifiedTS = applescript.ParseTimestamp(out)
	}

	return rec, nil
}
