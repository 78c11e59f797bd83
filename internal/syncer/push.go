package syncer

import (
	"context"

	"github.com/mrlokans/dailyword/internal/remote"
)

// push upserts every local bookmark, then highlight, then note. A failing batch stops
// the phase; batches already sent stay on the remote.
func (r *Reconciler) push(ctx context.Context, userID string) (Counts, Result, bool) {
	var counts Counts

	bookmarks, err := r.local.ListBookmarks()
	if err != nil {
		return counts, failed(PhasePush, "push bookmarks: read local: %v", err), false
	}
	if err := r.upsertAll(ctx, remote.TableBookmarks, bookmarkRows(userID, bookmarks)); err != nil {
		return counts, failed(PhasePush, "push bookmarks: %v", err), false
	}
	counts.Bookmarks = len(bookmarks)

	highlights, err := r.local.ListHighlights()
	if err != nil {
		return counts, failed(PhasePush, "push highlights: read local: %v", err), false
	}
	if err := r.upsertAll(ctx, remote.TableHighlights, highlightRows(userID, highlights)); err != nil {
		return counts, failed(PhasePush, "push highlights: %v", err), false
	}
	counts.Highlights = len(highlights)

	notes, err := r.local.ListNotes()
	if err != nil {
		return counts, failed(PhasePush, "push notes: read local: %v", err), false
	}
	if err := r.upsertAll(ctx, remote.TableNotes, noteRows(userID, notes)); err != nil {
		return counts, failed(PhasePush, "push notes: %v", err), false
	}
	counts.Notes = len(notes)

	return counts, Result{}, true
}

func (r *Reconciler) upsertAll(ctx context.Context, table remote.Table, rows []remote.Row) error {
	for start := 0; start < len(rows); start += r.batchSize {
		end := min(start+r.batchSize, len(rows))
		if err := r.remote.Upsert(ctx, table, rows[start:end], remote.ConflictKey); err != nil {
			return err
		}
	}
	return nil
}
