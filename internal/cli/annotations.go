package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/utils"
)

func newBookmarkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "bookmark <translation> <index>",
		Short:   "Toggle the bookmark on a verse",
		Example: `  dailyword bookmark KJV 1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			verse, err := lookupVerse(app, args[0], args[1])
			if err != nil {
				return err
			}

			bookmarked, err := app.Annotations.ToggleBookmark(verse.Ref())
			if err != nil {
				return err
			}

			if bookmarked {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", verseReference(verse))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark from %s\n", verseReference(verse))
			}
			return nil
		},
	}
}

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "highlight <translation> <index> [color]",
		Short: "Set or clear the highlight colour of a verse",
		Long: `Set or clear the highlight colour of a verse.

The color is a hex code or one of the palette names: ` + strings.Join(utils.HighlightColorNames, ", ") + `.`,
		Example: `  dailyword highlight KJV 3 mint
  dailyword highlight KJV 3 "#FFEB3B"
  dailyword highlight KJV 3 --clear`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var color string
			if len(args) == 3 {
				color = utils.ResolveHighlightColor(args[2])
			}
			if color == "" && !remove {
				return fmt.Errorf("a color is required unless --clear is set")
			}
			if remove {
				color = ""
			}

			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			verse, err := lookupVerse(app, args[0], args[1])
			if err != nil {
				return err
			}

			stored, err := app.Annotations.SetHighlight(verse.Ref(), color)
			if err != nil {
				return err
			}

			if stored == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed highlight from %s\n", verseReference(verse))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Highlighted %s with %s\n", verseReference(verse), stored)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "clear", false, "Remove the highlight")

	return cmd
}

func newNoteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "note <translation> <index> [text...]",
		Short: "Save the note on a verse; empty text removes it",
		Example: `  dailyword note KJV 4 "Light before the sun"
  dailyword note KJV 4`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			verse, err := lookupVerse(app, args[0], args[1])
			if err != nil {
				return err
			}

			stored, err := app.Annotations.SaveNote(verse.Ref(), strings.Join(args[2:], " "))
			if err != nil {
				return err
			}

			if stored == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed note from %s\n", verseReference(verse))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved note on %s\n", verseReference(verse))
			}
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "list <bookmarks|highlights|notes>",
		Short:     "List annotations across all translations",
		ValidArgs: []string{"bookmarks", "highlights", "notes"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			var count int

			switch args[0] {
			case "bookmarks":
				bookmarks, err := app.Annotations.ListBookmarks()
				if err != nil {
					return err
				}
				for _, b := range bookmarks {
					fmt.Fprintln(out, reference(b.Book, b.Chapter, b.Verse, b.Translation))
				}
				count = len(bookmarks)
			case "highlights":
				highlights, err := app.Annotations.ListHighlights()
				if err != nil {
					return err
				}
				for _, h := range highlights {
					fmt.Fprintf(out, "%s  %s\n", reference(h.Book, h.Chapter, h.Verse, h.Translation), h.Color)
				}
				count = len(highlights)
			case "notes":
				notes, err := app.Annotations.ListNotes()
				if err != nil {
					return err
				}
				for _, n := range notes {
					fmt.Fprintf(out, "%s  %s\n", reference(n.Book, n.Chapter, n.Verse, n.Translation), n.Text)
				}
				count = len(notes)
			}

			fmt.Fprintf(out, "%d %s\n", count, args[0])
			return nil
		},
	}
}
