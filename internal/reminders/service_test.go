package reminders

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/database/state"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

type schedule struct{ hour, minute int }

type fakeScheduler struct {
	scheduled []schedule
	cancels   int
	err       error
}

func (f *fakeScheduler) Schedule(hour, minute int) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, schedule{hour, minute})
	return nil
}

func (f *fakeScheduler) CancelAll() {
	f.cancels++
	f.scheduled = nil
}

type fakeAuditor struct{ descriptions []string }

func (f *fakeAuditor) LogSettings(action, description string) {
	f.descriptions = append(f.descriptions, description)
}

func setupService(t *testing.T) (*Service, *settingsstore.SettingsStore, *fakeScheduler, *fakeAuditor) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := settingsstore.New(state.NewRepository(db.DB), settingsstore.Defaults{})
	scheduler := &fakeScheduler{}
	auditor := &fakeAuditor{}
	return NewService(store, scheduler, auditor), store, scheduler, auditor
}

func TestService_GetDefaults(t *testing.T) {
	svc, _, _, _ := setupService(t)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settingsstore.ReminderSettings{Enabled: false, Hour: 8, Minute: 0}, settings)
}

func TestService_UpdateEnabled(t *testing.T) {
	svc, store, scheduler, auditor := setupService(t)

	require.NoError(t, svc.Update(settingsstore.ReminderSettings{Enabled: true, Hour: 0, Minute: 30}))

	assert.Equal(t, []schedule{{0, 30}}, scheduler.scheduled)
	assert.Equal(t, 1, scheduler.cancels)
	assert.Equal(t, []string{"Daily reminder set for 00:30"}, auditor.descriptions)

	persisted, err := store.GetReminderSettings()
	require.NoError(t, err)
	assert.Equal(t, settingsstore.ReminderSettings{Enabled: true, Hour: 0, Minute: 30}, persisted)
}

func TestService_UpdateReplacesPreviousSchedule(t *testing.T) {
	svc, _, scheduler, _ := setupService(t)

	require.NoError(t, svc.Update(settingsstore.ReminderSettings{Enabled: true, Hour: 7, Minute: 0}))
	require.NoError(t, svc.Update(settingsstore.ReminderSettings{Enabled: true, Hour: 21, Minute: 15}))

	assert.Equal(t, []schedule{{21, 15}}, scheduler.scheduled)
	assert.Equal(t, 2, scheduler.cancels)
}

func TestService_UpdateDisabled(t *testing.T) {
	svc, _, scheduler, auditor := setupService(t)

	require.NoError(t, svc.Update(settingsstore.ReminderSettings{Enabled: true, Hour: 7, Minute: 0}))
	require.NoError(t, svc.Update(settingsstore.ReminderSettings{Enabled: false, Hour: 7, Minute: 0}))

	assert.Empty(t, scheduler.scheduled)
	assert.Equal(t, "Daily reminder disabled", auditor.descriptions[1])
}

func TestService_UpdateInvalid(t *testing.T) {
	svc, store, scheduler, _ := setupService(t)

	for _, settings := range []settingsstore.ReminderSettings{
		{Enabled: true, Hour: 24, Minute: 0},
		{Enabled: true, Hour: -1, Minute: 0},
		{Enabled: true, Hour: 8, Minute: 60},
	} {
		err := svc.Update(settings)
		assert.ErrorIs(t, err, settingsstore.ErrInvalidReminderTime)
	}

	assert.Zero(t, scheduler.cancels)
	persisted, err := store.GetReminderSettings()
	require.NoError(t, err)
	assert.Equal(t, settingsstore.DefaultReminderSettings(), persisted)
}

func TestService_UpdateSchedulerFailure(t *testing.T) {
	svc, store, scheduler, auditor := setupService(t)
	scheduler.err = errors.New("no permission")

	err := svc.Update(settingsstore.ReminderSettings{Enabled: true, Hour: 9, Minute: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no permission")
	assert.Empty(t, auditor.descriptions)

	// settings stay persisted so a later Restore can retry
	persisted, err := store.GetReminderSettings()
	require.NoError(t, err)
	assert.True(t, persisted.Enabled)
}

func TestService_Restore(t *testing.T) {
	svc, store, scheduler, _ := setupService(t)

	require.NoError(t, svc.Restore())
	assert.Empty(t, scheduler.scheduled)

	require.NoError(t, store.SetReminderSettings(settingsstore.ReminderSettings{Enabled: true, Hour: 6, Minute: 45}))
	require.NoError(t, svc.Restore())
	assert.Equal(t, []schedule{{6, 45}}, scheduler.scheduled)
}
