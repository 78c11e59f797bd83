// Package database provides the local storage layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── handle.go        # Open-or-reuse connection guard
//	├── seed.go          # Sample verses and bulk verse insert
//	├── verses/          # Verse lookups, ranges and search
//	├── annotations/     # Bookmarks, highlights, notes and interactions
//	├── state/           # Persisted key/value application state
//	└── audit/           # Audit log of imports, syncs and settings changes
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	handle := database.NewHandle("./dailyword.db")
//	db, err := handle.Open()
//
//	versesRepo := verses.NewRepository(db.DB)
//	annotationsRepo := annotations.NewRepository(db.DB)
//
//	verse, err := versesRepo.ByIndex("KJV", 1)
//	added, err := annotationsRepo.ToggleBookmark(verse.Ref())
//
// # Errors
//
// Repositories return *StorageError for I/O and constraint failures.
// Lookups of absent rows are not errors: they return nil or the zero value.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate list in database.go
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
