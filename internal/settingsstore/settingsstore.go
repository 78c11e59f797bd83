// Package settingsstore resolves user-facing settings from persisted state,
// falling back to configured defaults.
//
// Priority: database > configuration (environment) > built-in default.
package settingsstore

import (
	"errors"
	"log"
	"strings"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/database/state"
	"github.com/mrlokans/dailyword/internal/entities"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// ErrUnknownTranslation is returned when setting a translation that is not supported.
var ErrUnknownTranslation = errors.New("unknown translation")

// Defaults are the configured values used when nothing is persisted.
type Defaults struct {
	Translation  string
	SyncSchedule string
}

// TokenSealer encrypts secrets before they are written to the state table.
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(value string) (string, error)
}

type SettingsStore struct {
	state    *state.Repository
	defaults Defaults
	sealer   TokenSealer
}

func New(repo *state.Repository, defaults Defaults) *SettingsStore {
	return &SettingsStore{state: repo, defaults: defaults}
}

// SealTokens encrypts the stored sync session tokens with sealer from now on.
func (s *SettingsStore) SealTokens(sealer TokenSealer) {
	s.sealer = sealer
}

// State exposes the underlying key/value repository.
func (s *SettingsStore) State() *state.Repository {
	return s.state
}

// get returns the stored value for key, treating read failures as absent.
func (s *SettingsStore) get(key string) (string, bool) {
	value, ok, err := s.state.Get(key)
	if err != nil {
		log.Printf("Settings: failed to read %s: %v", key, err)
		return "", false
	}
	return value, ok
}

type TranslationInfo struct {
	Translation string `json:"translation"`
	Label       string `json:"label"`
	Source      string `json:"source"` // "database", "environment", or "default"
}

// GetPreferredTranslation returns the translation used when a request does not name one.
func (s *SettingsStore) GetPreferredTranslation() string {
	return s.GetPreferredTranslationInfo().Translation
}

func (s *SettingsStore) GetPreferredTranslationInfo() TranslationInfo {
	translation, source := bible.Translations[0], SourceDefault

	if value, ok := s.get(entities.StateKeyPreferredTranslation); ok && bible.IsTranslation(value) {
		translation, source = value, SourceDatabase
	} else if def := strings.ToUpper(s.defaults.Translation); bible.IsTranslation(def) {
		translation = def
		if def != bible.Translations[0] {
			source = SourceEnvironment
		}
	}

	return TranslationInfo{
		Translation: translation,
		Label:       bible.TranslationLabel(translation),
		Source:      source,
	}
}

func (s *SettingsStore) SetPreferredTranslation(translation string) error {
	translation = strings.ToUpper(strings.TrimSpace(translation))
	if !bible.IsTranslation(translation) {
		return ErrUnknownTranslation
	}
	return s.state.Set(entities.StateKeyPreferredTranslation, translation)
}

// ResolveTranslation normalises a requested translation, using the preferred one when empty.
func (s *SettingsStore) ResolveTranslation(requested string) (string, error) {
	requested = strings.ToUpper(strings.TrimSpace(requested))
	if requested == "" {
		return s.GetPreferredTranslation(), nil
	}
	if !bible.IsTranslation(requested) {
		return "", ErrUnknownTranslation
	}
	return requested, nil
}
