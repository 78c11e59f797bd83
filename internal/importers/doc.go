// Package importers loads bulk verse text into the verse store.
//
// # Architecture
//
//	Source file → Decoder → []entities.Verse → Pipeline (normalise, validate) → VerseWriter
//
// Each supported format implements Decoder. The Pipeline trims and NFC-normalises text,
// rejects rows without a translation, text or a positive verse index, and hands the rest
// to the VerseWriter in batches. Rows whose (translation, verse_index) already exists
// are ignored, so an import can be re-run safely.
//
// # Supported Formats
//
//   - .json: an array of verses, or an object with a "verses" array
//   - .yaml, .yml: the same shapes in YAML
//   - .db, .sqlite, .sqlite3: a SQLite database with a "verses" table
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(db, auditService)
//	result, err := pipeline.ImportFile(ctx, "kjv.json")
package importers
