package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/store"
)

var errBackupDisabled = errors.New("backup is not configured (set s3_bucket)")

// Backup exports every record to the configured bucket.
func (a *App) Backup(ctx context.Context) error {
	b, err := a.backupper(ctx)
	if err != nil {
		return err
	}
	n, err := b.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backed up %d records (%d per-account states).\n", n, a.countStates(ctx))
	return nil
}

// countStates is informational; a listing failure is logged and reported as 0.
func (a *App) countStates(ctx context.Context) int {
	if a.store == nil {
		return 0
	}
	keys, err := a.store.Keys(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to list records", "error", err)
		return 0
	}
	n := 0
	for _, k := range keys {
		if store.IsStateKey(k) {
			n++
		}
	}
	return n
}

// Restore imports the records from the bucket and reloads the session.
func (a *App) Restore(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Restoring overwrites local records. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return ErrCancelled
	}

	b, err := a.backupper(ctx)
	if err != nil {
		return err
	}
	n, err := b.Import(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Restored %d records.\n", n)
	a.emissions.Close()
	a.credits.Close()

	ok, err := a.accounts.RestoreSession(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "The restored data has no valid session, please log in again.")
	}
	return nil
}

func (a *App) backupper(ctx context.Context) (backupper, error) {
	if a.config == nil || a.config.S3Bucket == "" || a.newBackupper == nil {
		return nil, errBackupDisabled
	}
	return a.newBackupper(ctx)
}
