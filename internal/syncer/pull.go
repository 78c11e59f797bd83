package syncer

import (
	"context"

	"github.com/mrlokans/dailyword/internal/remote"
)

type pulledRows struct {
	bookmarks  []remote.Row
	highlights []remote.Row
	notes      []remote.Row
}

// pull fetches the user's full remote row set for each annotation kind.
func (r *Reconciler) pull(ctx context.Context, userID string) (pulledRows, Result, bool) {
	var pulled pulledRows
	var err error

	if pulled.bookmarks, err = r.remote.SelectAll(ctx, remote.TableBookmarks, userID); err != nil {
		return pulled, failed(PhasePull, "pull bookmarks: %v", err), false
	}
	if pulled.highlights, err = r.remote.SelectAll(ctx, remote.TableHighlights, userID); err != nil {
		return pulled, failed(PhasePull, "pull highlights: %v", err), false
	}
	if pulled.notes, err = r.remote.SelectAll(ctx, remote.TableNotes, userID); err != nil {
		return pulled, failed(PhasePull, "pull notes: %v", err), false
	}
	return pulled, Result{}, true
}

// apply writes pulled rows into the local store, one transaction per kind.
// Rows missing required fields are skipped and counted.
func (r *Reconciler) apply(pulled pulledRows) (Counts, int, Result, bool) {
	var counts Counts

	bookmarks, skippedBookmarks := bookmarksFromRows(pulled.bookmarks)
	highlights, skippedHighlights := highlightsFromRows(pulled.highlights)
	notes, skippedNotes := notesFromRows(pulled.notes)
	skipped := skippedBookmarks + skippedHighlights + skippedNotes

	if err := r.local.ReplaceBookmarks(bookmarks); err != nil {
		return counts, skipped, failed(PhaseApply, "apply bookmarks: %v", err), false
	}
	counts.Bookmarks = len(bookmarks)

	if err := r.local.ReplaceHighlights(highlights); err != nil {
		return counts, skipped, failed(PhaseApply, "apply highlights: %v", err), false
	}
	counts.Highlights = len(highlights)

	if err := r.local.ReplaceNotes(notes); err != nil {
		return counts, skipped, failed(PhaseApply, "apply notes: %v", err), false
	}
	counts.Notes = len(notes)

	return counts, skipped, Result{}, true
}
