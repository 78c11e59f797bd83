package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/plan"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var (
		translation string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's reading",
		Example: `  dailyword today
  dailyword today --translation WEB
  dailyword today --date 2025-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation(settingsstore.DateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}

			app, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			resolved, err := app.Settings.ResolveTranslation(translation)
			if err != nil {
				return fmt.Errorf("%w: %s", err, translation)
			}

			reading, err := app.Planner.ReadingFor(resolved, day)
			if err != nil {
				return err
			}
			interactions, err := app.Annotations.GetInteractions(resolved, reading.Indices())
			if err != nil {
				return err
			}

			printReading(cmd.OutOrStdout(), reading, interactions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&translation, "translation", "t", "", "Translation code (default: preferred translation)")
	cmd.Flags().StringVar(&date, "date", "", "Show the reading for this day instead of today (YYYY-MM-DD)")

	return cmd
}

func printReading(w io.Writer, reading plan.DailyReading, interactions entities.Interactions) {
	fmt.Fprintf(w, "%s (%s)\n", bible.TranslationLabel(reading.Translation), reading.Translation)

	if len(reading.Verses) == 0 {
		fmt.Fprintf(w, "Day %d, %s: reading plan complete (%d verses)\n", reading.DayNumber, reading.Date, reading.TotalVerses)
		return
	}

	fmt.Fprintf(w, "Day %d, %s: verses %d-%d of %d\n\n",
		reading.DayNumber, reading.Date, reading.StartIndex, reading.EndIndex, reading.TotalVerses)

	for _, v := range reading.Verses {
		line := fmt.Sprintf("%s  %s", bible.FormatReference(v.Book, v.Chapter, v.Number), v.Text)
		if interactions.Bookmarked[v.VerseIndex] {
			line += " [bookmarked]"
		}
		if color := interactions.Highlights[v.VerseIndex]; color != "" {
			line += " [highlight " + color + "]"
		}
		fmt.Fprintln(w, line)
		if note := interactions.Notes[v.VerseIndex]; note != "" {
			fmt.Fprintf(w, "    Note: %s\n", note)
		}
	}
}
