// Package cli implements the dailyword command line.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/entrypoint"
)

type rootOptions struct {
	dbPath string
}

// NewRootCmd builds the dailyword command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dailyword",
		Short:         "Daily Bible reading with bookmarks, highlights and notes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the local database (default: DATABASE_PATH or "+config.DefaultDatabasePath+")")

	root.AddCommand(
		newServeCmd(opts, version),
		newTodayCmd(opts),
		newSearchCmd(opts),
		newVerseCmd(opts),
		newTranslationsCmd(opts),
		newImportCmd(opts),
		newSeedCmd(opts),
		newSyncCmd(opts),
		newBookmarkCmd(opts),
		newHighlightCmd(opts),
		newNoteCmd(opts),
		newListCmd(opts),
		newReminderCmd(opts),
	)

	return root
}

func (o *rootOptions) config() *config.Config {
	cfg := config.NewConfig()
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	return cfg
}

// open opens the local stores. With bootstrap set, an empty verse store is filled
// the same way the server does at startup.
func (o *rootOptions) open(ctx context.Context, bootstrap bool) (*entrypoint.App, error) {
	app, err := entrypoint.Open(o.config())
	if err != nil {
		return nil, err
	}
	if bootstrap {
		if err := app.Bootstrap(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}
	return app, nil
}

// lookupVerse resolves a "<translation> <index>" argument pair to a stored verse.
func lookupVerse(app *entrypoint.App, translationArg, indexArg string) (*entities.Verse, error) {
	translation, err := app.Settings.ResolveTranslation(translationArg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, translationArg)
	}
	index, err := strconv.Atoi(indexArg)
	if err != nil || index < 1 {
		return nil, fmt.Errorf("invalid verse index: %s", indexArg)
	}

	verse, err := app.Verses.ByIndex(translation, index)
	if err != nil {
		return nil, err
	}
	if verse == nil {
		return nil, fmt.Errorf("verse %d not found in %s", index, translation)
	}
	return verse, nil
}

func reference(book, chapter, verse int, translation string) string {
	return fmt.Sprintf("%s (%s)", bible.FormatReference(book, chapter, verse), translation)
}

func verseReference(v *entities.Verse) string {
	return reference(v.Book, v.Chapter, v.Number, v.Translation)
}
