package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/reminders"
	"github.com/mrlokans/dailyword/internal/scheduler"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

const reminderTimeLayout = "15:04"

func newReminderCmd(opts *rootOptions) *cobra.Command {
	var (
		enable  bool
		disable bool
		at      string
	)

	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Show or change the daily reading reminder",
		Long: `Show or change the daily reading reminder.

The running server delivers the reminder; changes made here are picked up the next
time it starts.`,
		Example: `  dailyword reminder
  dailyword reminder --enable --at 07:30
  dailyword reminder --disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			reminderScheduler := scheduler.NewReminderScheduler(nil, app.Config.Plan.PageSize)
			service := reminders.NewService(app.Settings, reminderScheduler, app.Audit)

			settings, err := service.Get()
			if err != nil {
				return err
			}

			if enable || disable || at != "" {
				if enable {
					settings.Enabled = true
				}
				if disable {
					settings.Enabled = false
				}
				if at != "" {
					parsed, err := time.Parse(reminderTimeLayout, at)
					if err != nil {
						return fmt.Errorf("invalid time %q, expected HH:MM", at)
					}
					settings.Hour, settings.Minute = parsed.Hour(), parsed.Minute()
				}
				if err := service.Update(settings); err != nil {
					return err
				}
			} else if err := service.Restore(); err != nil {
				return err
			}

			printReminder(cmd.OutOrStdout(), settings, reminderScheduler.NextReminder(time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "Turn the daily reminder on")
	cmd.Flags().BoolVar(&disable, "disable", false, "Turn the daily reminder off")
	cmd.Flags().StringVar(&at, "at", "", "Reminder time of day (HH:MM, 24-hour)")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")

	return cmd
}

func printReminder(w io.Writer, settings settingsstore.ReminderSettings, next *time.Time) {
	if !settings.Enabled {
		fmt.Fprintf(w, "Daily reminder: off (%02d:%02d)\n", settings.Hour, settings.Minute)
		return
	}
	fmt.Fprintf(w, "Daily reminder: on at %02d:%02d\n", settings.Hour, settings.Minute)
	if next != nil {
		fmt.Fprintf(w, "Next reminder: %s\n", next.Format("Mon 2006-01-02 15:04"))
	}
}
