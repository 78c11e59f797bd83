package importers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/entities"
)

// ErrUnsupportedFormat is returned for a source file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported verse source format")

// Decoder reads every verse from a source file.
type Decoder interface {
	Decode(ctx context.Context, path string) ([]entities.Verse, error)
}

// VerseWriter persists verses, ignoring rows that already exist.
type VerseWriter interface {
	InsertVerses(verses []entities.Verse, batchSize int) (int64, error)
}

// ImportAuditor records finished imports.
type ImportAuditor interface {
	LogImport(source, description string, versesCount int64, err error)
}

// Result summarises one import.
type Result struct {
	Read       int   `json:"read"`
	Inserted   int64 `json:"inserted"`
	Rejected   int   `json:"rejected"`
	Duplicates int64 `json:"duplicates"`
}

// Pipeline handles the common import workflow: decode → normalise → validate → insert.
type Pipeline struct {
	writer    VerseWriter
	auditor   ImportAuditor
	batchSize int
	decoders  map[string]Decoder
}

// NewPipeline creates a pipeline with decoders for every supported extension. auditor may be nil.
func NewPipeline(writer VerseWriter, auditor ImportAuditor) *Pipeline {
	sqliteDecoder := SQLiteDecoder{}
	yamlDecoder := YAMLDecoder{}
	return &Pipeline{
		writer:    writer,
		auditor:   auditor,
		batchSize: config.DefaultSyncBatchSize,
		decoders: map[string]Decoder{
			".json":    JSONDecoder{},
			".yaml":    yamlDecoder,
			".yml":     yamlDecoder,
			".db":      sqliteDecoder,
			".sqlite":  sqliteDecoder,
			".sqlite3": sqliteDecoder,
		},
	}
}

// DecoderFor returns the decoder registered for path's extension.
func (p *Pipeline) DecoderFor(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decoder, ok := p.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return decoder, nil
}

// ImportFile decodes path and imports its verses. It returns the number of rows inserted.
func (p *Pipeline) ImportFile(ctx context.Context, path string) (int64, error) {
	result, err := p.Import(ctx, path)
	return result.Inserted, err
}

// Import decodes path and imports its verses, returning the full summary.
func (p *Pipeline) Import(ctx context.Context, path string) (Result, error) {
	source := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	decoder, err := p.DecoderFor(path)
	if err != nil {
		p.audit(source, path, Result{}, err)
		return Result{}, err
	}

	verses, err := decoder.Decode(ctx, path)
	if err != nil {
		err = fmt.Errorf("failed to read %s: %w", path, err)
		p.audit(source, path, Result{}, err)
		return Result{}, err
	}

	result, err := p.ImportVerses(ctx, verses)
	p.audit(source, path, result, err)
	return result, err
}

// ImportVerses normalises, validates and inserts already decoded verses.
func (p *Pipeline) ImportVerses(ctx context.Context, verses []entities.Verse) (Result, error) {
	result := Result{Read: len(verses)}

	valid := make([]entities.Verse, 0, len(verses))
	for _, v := range verses {
		v = Normalize(v)
		if err := Validate(v); err != nil {
			result.Rejected++
			continue
		}
		valid = append(valid, v)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	inserted, err := p.writer.InsertVerses(valid, p.batchSize)
	if err != nil {
		return result, err
	}
	result.Inserted = inserted
	result.Duplicates = int64(len(valid)) - inserted

	return result, nil
}

func (p *Pipeline) audit(source, path string, result Result, err error) {
	if err == nil {
		log.Printf("Imported %d verses from %s (%d rejected, %d already present)",
			result.Inserted, path, result.Rejected, result.Duplicates)
	} else {
		log.Printf("Verse import from %s failed: %v", path, err)
	}

	if p.auditor == nil {
		return
	}
	description := fmt.Sprintf("Imported %d of %d verses from %s", result.Inserted, result.Read, filepath.Base(path))
	p.auditor.LogImport(source, description, result.Inserted, err)
}

// Normalize trims fields, upper-cases the translation code and NFC-normalises the text.
func Normalize(v entities.Verse) entities.Verse {
	v.ID = 0
	v.Translation = strings.ToUpper(strings.TrimSpace(v.Translation))
	v.Text = norm.NFC.String(strings.TrimSpace(v.Text))
	return v
}

// Validate reports why a verse cannot be stored.
func Validate(v entities.Verse) error {
	switch {
	case v.Translation == "":
		return errors.New("translation is required")
	case v.Text == "":
		return errors.New("text is required")
	case v.VerseIndex < 1:
		return fmt.Errorf("verse_index must be positive, got %d", v.VerseIndex)
	}
	return nil
}
