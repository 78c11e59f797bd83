package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/bible"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var translation string

	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find verses containing a phrase",
		Example: `  dailyword search "in the beginning" --translation KJV`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			resolved, err := app.Settings.ResolveTranslation(translation)
			if err != nil {
				return fmt.Errorf("%w: %s", err, translation)
			}

			results, err := app.Verses.Search(resolved, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range results {
				fmt.Fprintf(out, "%s  %s\n", bible.FormatReference(v.Book, v.Chapter, v.Number), v.Text)
			}
			fmt.Fprintf(out, "%d results in %s\n", len(results), resolved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&translation, "translation", "t", "", "Translation code (default: preferred translation)")

	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import verses from a .json, .yaml or sqlite file",
		Long: `Import verses into the local store.

Rows already present (same translation and verse index) are left untouched, so an
import can be re-run safely. Rows with an empty translation, empty text or an index
below 1 are rejected.`,
		Example: `  dailyword import ./kjv.json
  dailyword import ./bibles.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Importer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Read %d verses: %d inserted, %d duplicates, %d rejected\n",
				result.Read, result.Inserted, result.Duplicates, result.Rejected)
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample verses (Genesis 1:1-10) for every translation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.DB.SeedSampleVerses(); err != nil {
				return err
			}

			count, err := app.DB.VerseCount()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Verse store now holds %d verses\n", count)
			return nil
		},
	}
}

func newVerseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verse <translation> <reference>",
		Short: "Show one verse by its reference",
		Example: `  dailyword verse KJV "Genesis 1:3"
  dailyword verse web 1 John 4:8`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			translation, err := app.Settings.ResolveTranslation(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			ref := strings.Join(args[1:], " ")
			book, chapter, number, err := bible.ParseReference(ref)
			if err != nil {
				return err
			}

			verse, err := app.Verses.ByReference(translation, book, chapter, number)
			if err != nil {
				return err
			}
			if verse == nil {
				return fmt.Errorf("%s not found in %s", bible.FormatReference(book, chapter, number), translation)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  #%d\n%s\n", verseReference(verse), verse.VerseIndex, verse.Text)
			return nil
		},
	}
}

func newTranslationsCmd(opts *rootOptions) *cobra.Command {
	var preferred string

	cmd := &cobra.Command{
		Use:   "translations",
		Short: "List translations and their local verse counts",
		Long: `List the supported translations with the number of verses stored locally.
The preferred translation is marked with '*'. Imported translations that are not
supported are listed last.`,
		Example: `  dailyword translations
  dailyword translations --set ASV`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			if preferred != "" {
				if err := app.Settings.SetPreferredTranslation(preferred); err != nil {
					return fmt.Errorf("%w: %s", err, preferred)
				}
			}

			installed, err := app.Verses.Translations()
			if err != nil {
				return err
			}
			codes := append([]string{}, bible.Translations...)
			for _, code := range installed {
				if !bible.IsTranslation(code) {
					codes = append(codes, code)
				}
			}

			current := app.Settings.GetPreferredTranslation()
			out := cmd.OutOrStdout()
			for _, code := range codes {
				count, err := app.Verses.Count(code)
				if err != nil {
					return err
				}
				marker := " "
				if code == current {
					marker = "*"
				}
				suffix := ""
				if !bible.IsTranslation(code) {
					suffix = " (unsupported)"
				}
				fmt.Fprintf(out, "%s %-4s %-26s %d verses%s\n", marker, code, bible.TranslationLabel(code), count, suffix)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preferred, "set", "", "Make this the preferred translation")

	return cmd
}
