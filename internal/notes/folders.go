package notes

import (
	"context"
	"strconv"

	"github.com/venlow/laguz/internal/applescript"
)

// ListFolders returns the names of every folder.
func (o *Ops) ListFolders(ctx context.Context) ([]string, error) {
	out, err := o.get(ctx, "get name of every folder")
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}

// CreateFolder makes a new folder.
func (o *Ops) CreateFolder(ctx context.Context, name string) error {
	_, err := o.get(ctx, "make new folder with properties {name:%s}", applescript.Quote(name))
	return err
}

// DeleteFolder removes a folder.
func (o *Ops) DeleteFolder(ctx context.Context, name string) error {
	_, err := o.get(ctx, "delete folder %s", applescript.Quote(name))
	return err
}

// CountNotesInFolder returns the number of notes in a folder.
// Non-numeric output counts as 0.
func (o *Ops) CountNotesInFolder(ctx context.Context, name string) (int, error) {
	out, err := o.get(ctx, "count notes of folder %s", applescript.Quote(name))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// FolderProperties returns all properties of a folder as a flat map.
func (o *Ops) FolderProperties(ctx context.Context, name string) (map[string]string, error) {
	out, err := o.get(ctx, "get properties of folder %s", applescript.Quote(name))
	if err != nil {
		return nil, err
	}
	return applescript.ParseRecord(out), nil
}
