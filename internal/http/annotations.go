package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/utils"
)

type AnnotationsController struct {
	verses       VerseStore
	annotations  AnnotationStore
	translations TranslationResolver
}

func NewAnnotationsController(verses VerseStore, annotations AnnotationStore, translations TranslationResolver) *AnnotationsController {
	return &AnnotationsController{
		verses:       verses,
		annotations:  annotations,
		translations: translations,
	}
}

// HighlightRequest sets or clears a highlight; a null or empty color clears it.
type HighlightRequest struct {
	Color *string `json:"color"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

// verseRef resolves the :translation/:index path to an existing verse's reference.
func (ac *AnnotationsController) verseRef(c *gin.Context) (entities.VerseRef, bool) {
	translation, ok := resolveTranslation(c, ac.translations, c.Param("translation"))
	if !ok {
		return entities.VerseRef{}, false
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return entities.VerseRef{}, false
	}

	verse, err := ac.verses.ByIndex(translation, index)
	if err != nil {
		respondInternalError(c, err, "lookup verse")
		return entities.VerseRef{}, false
	}
	if verse == nil {
		respondNotFound(c, "verse")
		return entities.VerseRef{}, false
	}
	return verse.Ref(), true
}

// ToggleBookmark flips the bookmark on a verse.
// POST /api/verses/:translation/:index/bookmark
func (ac *AnnotationsController) ToggleBookmark(c *gin.Context) {
	ref, ok := ac.verseRef(c)
	if !ok {
		return
	}

	bookmarked, err := ac.annotations.ToggleBookmark(ref)
	if err != nil {
		respondInternalError(c, err, "toggle bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translation": ref.Translation,
		"verse_index": ref.VerseIndex,
		"bookmarked":  bookmarked,
	})
}

// SetHighlight sets or clears the highlight color of a verse.
// PUT /api/verses/:translation/:index/highlight
func (ac *AnnotationsController) SetHighlight(c *gin.Context) {
	ref, ok := ac.verseRef(c)
	if !ok {
		return
	}

	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	color := ""
	if req.Color != nil {
		color = utils.ResolveHighlightColor(*req.Color)
	}

	saved, err := ac.annotations.SetHighlight(ref, color)
	if err != nil {
		respondInternalError(c, err, "set highlight")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translation": ref.Translation,
		"verse_index": ref.VerseIndex,
		"color":       nullable(saved),
	})
}

// HighlightPalette lists the named highlight colors.
// GET /api/highlights/palette
func (ac *AnnotationsController) HighlightPalette(c *gin.Context) {
	palette := make([]gin.H, 0, len(utils.HighlightColorNames))
	for _, name := range utils.HighlightColorNames {
		palette = append(palette, gin.H{"name": name, "color": utils.HighlightPalette[name]})
	}
	c.JSON(http.StatusOK, gin.H{"palette": palette})
}

// SaveNote saves or deletes (empty text) the note on a verse.
// PUT /api/verses/:translation/:index/note
func (ac *AnnotationsController) SaveNote(c *gin.Context) {
	ref, ok := ac.verseRef(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	saved, err := ac.annotations.SaveNote(ref, req.Text)
	if err != nil {
		respondInternalError(c, err, "save note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translation": ref.Translation,
		"verse_index": ref.VerseIndex,
		"text":        nullable(saved),
	})
}

// Interactions returns the annotation state of a set of verses.
// GET /api/interactions?translation=&indices=1,2,3
func (ac *AnnotationsController) Interactions(c *gin.Context) {
	translation, ok := resolveTranslation(c, ac.translations, c.Query("translation"))
	if !ok {
		return
	}
	indices, err := parseIndexList(c.Query("indices"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	interactions, err := ac.annotations.GetInteractions(translation, indices)
	if err != nil {
		respondInternalError(c, err, "get interactions")
		return
	}

	c.JSON(http.StatusOK, interactions)
}

// ListBookmarks handles GET /api/bookmarks
func (ac *AnnotationsController) ListBookmarks(c *gin.Context) {
	bookmarks, err := ac.annotations.ListBookmarks()
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks, "count": len(bookmarks)})
}

// ListHighlights handles GET /api/highlights
func (ac *AnnotationsController) ListHighlights(c *gin.Context) {
	highlights, err := ac.annotations.ListHighlights()
	if err != nil {
		respondInternalError(c, err, "list highlights")
		return
	}
	c.JSON(http.StatusOK, gin.H{"highlights": highlights, "count": len(highlights)})
}

// ListNotes handles GET /api/notes
func (ac *AnnotationsController) ListNotes(c *gin.Context) {
	notes, err := ac.annotations.ListNotes()
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes, "count": len(notes)})
}

// nullable renders an empty annotation value as JSON null.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
