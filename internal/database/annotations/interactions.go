package annotations

import (
	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// GetInteractions returns the bookmark, highlight and note state of the given verse
// indices within one translation. Indices without annotations are absent from the
// result. An empty index list returns empty containers without querying.
func (r *Repository) GetInteractions(translation string, verseIndices []int) (entities.Interactions, error) {
	result := entities.NewInteractions()

	indices := uniqueIndices(verseIndices)
	if len(indices) == 0 {
		return result, nil
	}

	for start := 0; start < len(indices); start += lookupChunkSize {
		end := min(start+lookupChunkSize, len(indices))
		chunk := indices[start:end]

		var bookmarks []entities.Bookmark
		err := r.db.Select("verse_index").
			Where("translation = ? AND verse_index IN ?", translation, chunk).
			Find(&bookmarks).Error
		if err != nil {
			return entities.Interactions{}, database.Wrap("get bookmark interactions", err)
		}
		for _, b := range bookmarks {
			result.Bookmarked[b.VerseIndex] = true
		}

		var highlights []entities.Highlight
		err = r.db.Select("verse_index", "color").
			Where("translation = ? AND verse_index IN ?", translation, chunk).
			Find(&highlights).Error
		if err != nil {
			return entities.Interactions{}, database.Wrap("get highlight interactions", err)
		}
		for _, h := range highlights {
			result.Highlights[h.VerseIndex] = h.Color
		}

		var notes []entities.Note
		err = r.db.Select("verse_index", "text").
			Where("translation = ? AND verse_index IN ?", translation, chunk).
			Find(&notes).Error
		if err != nil {
			return entities.Interactions{}, database.Wrap("get note interactions", err)
		}
		for _, n := range notes {
			result.Notes[n.VerseIndex] = n.Text
		}
	}

	return result, nil
}

func uniqueIndices(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	unique := make([]int, 0, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		unique = append(unique, idx)
	}
	return unique
}
