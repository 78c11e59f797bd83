package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

type SettingsController struct {
	translations TranslationSettings
	reminders    ReminderService
}

func NewSettingsController(translations TranslationSettings, reminders ReminderService) *SettingsController {
	return &SettingsController{translations: translations, reminders: reminders}
}

type TranslationRequest struct {
	Translation string `json:"translation" binding:"required"`
}

// GetTranslation returns the preferred translation and the supported ones.
// GET /api/settings/translation
func (sc *SettingsController) GetTranslation(c *gin.Context) {
	available := make([]gin.H, len(bible.Translations))
	for i, code := range bible.Translations {
		available[i] = gin.H{"translation": code, "label": bible.TranslationLabel(code)}
	}

	c.JSON(http.StatusOK, gin.H{
		"current":   sc.translations.GetPreferredTranslationInfo(),
		"available": available,
	})
}

// SetTranslation stores the preferred translation.
// PUT /api/settings/translation
func (sc *SettingsController) SetTranslation(c *gin.Context) {
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "translation is required")
		return
	}

	if err := sc.translations.SetPreferredTranslation(req.Translation); err != nil {
		if errors.Is(err, settingsstore.ErrUnknownTranslation) {
			respondBadRequest(c, "unknown translation: "+req.Translation)
			return
		}
		respondInternalError(c, err, "set translation")
		return
	}

	c.JSON(http.StatusOK, sc.translations.GetPreferredTranslationInfo())
}

// GetReminder returns the daily reminder settings.
// GET /api/settings/reminder
func (sc *SettingsController) GetReminder(c *gin.Context) {
	settings, err := sc.reminders.Get()
	if err != nil {
		respondInternalError(c, err, "get reminder")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SetReminder validates, stores and reschedules the daily reminder.
// PUT /api/settings/reminder
func (sc *SettingsController) SetReminder(c *gin.Context) {
	var req settingsstore.ReminderSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := sc.reminders.Update(req); err != nil {
		if errors.Is(err, settingsstore.ErrInvalidReminderTime) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "update reminder")
		return
	}

	c.JSON(http.StatusOK, req)
}
