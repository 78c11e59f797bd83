package importers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/dailyword/internal/entities"
)

// verseFile is the object form of a JSON or YAML source.
type verseFile struct {
	Verses []entities.Verse `json:"verses" yaml:"verses"`
}

// JSONDecoder reads a JSON array of verses or an object holding one under "verses".
type JSONDecoder struct{}

func (JSONDecoder) Decode(ctx context.Context, path string) ([]entities.Verse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var verses []entities.Verse
	if err := json.Unmarshal(data, &verses); err == nil {
		return verses, nil
	}

	var file verseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return file.Verses, nil
}

// YAMLDecoder reads a YAML sequence of verses or a mapping holding one under "verses".
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(ctx context.Context, path string) ([]entities.Verse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var verses []entities.Verse
		if err := root.Decode(&verses); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return verses, nil
	}

	var file verseFile
	if err := root.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return file.Verses, nil
}

// SQLiteDecoder reads the "verses" table of a pre-built SQLite database.
type SQLiteDecoder struct{}

func (SQLiteDecoder) Decode(ctx context.Context, path string) ([]entities.Verse, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open("file:"+path+"?mode=ro"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var verses []entities.Verse
	err = db.WithContext(ctx).
		Select("translation", "book", "chapter", "verse", "verse_index", "text").
		Order("translation ASC, verse_index ASC").
		Find(&verses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read verses table: %w", err)
	}
	return verses, nil
}
