package notes

import (
	"context"

	"github.com/venlow/laguz/internal/applescript"
)

// ListAccounts returns the names of every account.
func (o *Ops) ListAccounts(ctx context.Context) ([]string, error) {
	out, err := o.get(ctx, "get name of every account")
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}

// DefaultAccount returns the default account.
func (o *Ops) DefaultAccount(ctx context.Context) (string, error) {
	return o.get(ctx, "get default account")
}

// ListFoldersInAccount returns the folder names of a specific account.
func (o *Ops) ListFoldersInAccount(ctx context.Context, account string) ([]string, error) {
	out, err := o.get(ctx, "get name of every folder of account %s", applescript.Quote(account))
	if err != nil {
		return nil, err
	}
	return applescript.ParseList(out), nil
}
