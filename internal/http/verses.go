package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/plan"
)

// VerseView is a verse with its human-readable reference.
type VerseView struct {
	entities.Verse
	Reference string `json:"reference"`
}

func newVerseViews(verses []entities.Verse) []VerseView {
	views := make([]VerseView, len(verses))
	for i, v := range verses {
		views[i] = VerseView{Verse: v, Reference: bible.FormatReference(v.Book, v.Chapter, v.Number)}
	}
	return views
}

// TodayResponse is the daily reading with the annotation state of its verses.
type TodayResponse struct {
	plan.DailyReading
	Verses       []VerseView           `json:"verses"`
	Interactions entities.Interactions `json:"interactions"`
}

type VersesController struct {
	verses       VerseStore
	annotations  AnnotationStore
	planner      ReadingPlanner
	translations TranslationResolver
}

func NewVersesController(verses VerseStore, annotations AnnotationStore, planner ReadingPlanner, translations TranslationResolver) *VersesController {
	return &VersesController{
		verses:       verses,
		annotations:  annotations,
		planner:      planner,
		translations: translations,
	}
}

// Today returns today's reading and the interactions of its verses.
// GET /api/reading/today?translation=
func (vc *VersesController) Today(c *gin.Context) {
	translation, ok := resolveTranslation(c, vc.translations, c.Query("translation"))
	if !ok {
		return
	}

	reading, err := vc.planner.DailyReading(translation)
	if err != nil {
		respondInternalError(c, err, "daily reading")
		return
	}

	interactions, err := vc.annotations.GetInteractions(translation, reading.Indices())
	if err != nil {
		respondInternalError(c, err, "reading interactions")
		return
	}

	c.JSON(http.StatusOK, TodayResponse{
		DailyReading: reading,
		Verses:       newVerseViews(reading.Verses),
		Interactions: interactions,
	})
}

// GetVerse returns one verse.
// GET /api/verses/:translation/:index
func (vc *VersesController) GetVerse(c *gin.Context) {
	translation, ok := resolveTranslation(c, vc.translations, c.Param("translation"))
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	verse, err := vc.verses.ByIndex(translation, index)
	if err != nil {
		respondInternalError(c, err, "get verse")
		return
	}
	if verse == nil {
		respondNotFound(c, "verse")
		return
	}

	c.JSON(http.StatusOK, VerseView{Verse: *verse, Reference: bible.FormatReference(verse.Book, verse.Chapter, verse.Number)})
}

// GetVerseByReference looks a verse up by its human reference.
// GET /api/verses/:translation?ref=Genesis%201:3
func (vc *VersesController) GetVerseByReference(c *gin.Context) {
	translation, ok := resolveTranslation(c, vc.translations, c.Param("translation"))
	if !ok {
		return
	}
	book, chapter, number, err := bible.ParseReference(c.Query("ref"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	verse, err := vc.verses.ByReference(translation, book, chapter, number)
	if err != nil {
		respondInternalError(c, err, "get verse by reference")
		return
	}
	if verse == nil {
		respondNotFound(c, "verse")
		return
	}

	c.JSON(http.StatusOK, VerseView{Verse: *verse, Reference: bible.FormatReference(verse.Book, verse.Chapter, verse.Number)})
}

// TranslationSummary describes one translation and how much of it is stored locally.
type TranslationSummary struct {
	Translation string `json:"translation"`
	Label       string `json:"label"`
	Verses      int64  `json:"verses"`
	Supported   bool   `json:"supported"`
}

// ListTranslations returns the supported translations with their local verse counts,
// followed by any imported translation codes that are not supported.
// GET /api/translations
func (vc *VersesController) ListTranslations(c *gin.Context) {
	installed, err := vc.verses.Translations()
	if err != nil {
		respondInternalError(c, err, "list translations")
		return
	}

	codes := append([]string{}, bible.Translations...)
	for _, code := range installed {
		if !bible.IsTranslation(code) {
			codes = append(codes, code)
		}
	}

	summaries := make([]TranslationSummary, 0, len(codes))
	for _, code := range codes {
		count, err := vc.verses.Count(code)
		if err != nil {
			respondInternalError(c, err, "count verses")
			return
		}
		summaries = append(summaries, TranslationSummary{
			Translation: code,
			Label:       bible.TranslationLabel(code),
			Verses:      count,
			Supported:   bible.IsTranslation(code),
		})
	}

	c.JSON(http.StatusOK, gin.H{"translations": summaries})
}

// Search finds verses containing the query text.
// GET /api/search?q=&translation=
func (vc *VersesController) Search(c *gin.Context) {
	translation, ok := resolveTranslation(c, vc.translations, c.Query("translation"))
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Query("q"))

	verses, err := vc.verses.Search(translation, query)
	if err != nil {
		respondInternalError(c, err, "search verses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"translation": translation,
		"results":     newVerseViews(verses),
		"count":       len(verses),
	})
}
