// Package state provides database operations for persisted application state.
//
// State is a flat key/value table. Writes overwrite the previous value; no history is kept.
//
// # Usage
//
//	repo := state.NewRepository(db)
//	value, ok, err := repo.Get(entities.StateKeyPlanStartDate)
package state

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// Repository handles all state database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new state repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *Repository) Get(key string) (string, bool, error) {
	var row entities.AppState
	err := r.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, database.Wrap("get state "+key, err)
	}
	return row.Value, true, nil
}

// Set creates or overwrites the value stored under key.
func (r *Repository) Set(key, value string) error {
	row := entities.AppState{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	return database.Wrap("set state "+key, err)
}

// SetMany writes several keys in one transaction.
func (r *Repository) SetMany(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return NewRepository(tx).setAll(values)
	})
	return database.Wrap("set state", err)
}

func (r *Repository) setAll(values map[string]string) error {
	for key, value := range values {
		if err := r.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetIfAbsent stores value under key only when the key does not exist yet.
// It returns the value that is stored after the call.
func (r *Repository) SetIfAbsent(key, value string) (string, error) {
	row := entities.AppState{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return "", database.Wrap("set state "+key, err)
	}
	stored, _, err := r.Get(key)
	return stored, err
}

// Delete removes key. Deleting an absent key is not an error.
func (r *Repository) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.db.Where("key IN ?", keys).Delete(&entities.AppState{}).Error
	return database.Wrap("delete state", err)
}

// All returns every stored key/value pair.
func (r *Repository) All() (map[string]string, error) {
	var rows []entities.AppState
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, database.Wrap("list state", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
