package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	titles []string
	bodies []string
	err    error
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	return n.err
}

func TestReminderBody(t *testing.T) {
	assert.Equal(t, "Your 10 verses are ready for today.", ReminderBody(10))
}

func TestReminderScheduler_ScheduleAndCancel(t *testing.T) {
	r := NewReminderScheduler(&recordingNotifier{}, 10)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

	assert.Nil(t, r.NextReminder(now))

	require.NoError(t, r.Schedule(8, 30))
	next := r.NextReminder(now)
	require.NotNil(t, next)
	assertSameTime(t, time.Date(2024, 3, 11, 8, 30, 0, 0, time.Local), *next)

	require.NoError(t, r.Schedule(21, 0))
	next = r.NextReminder(now)
	require.NotNil(t, next)
	assertSameTime(t, time.Date(2024, 3, 10, 21, 0, 0, 0, time.Local), *next)

	r.CancelAll()
	assert.Nil(t, r.NextReminder(now))
}

func TestReminderScheduler_MidnightHour(t *testing.T) {
	r := NewReminderScheduler(nil, 10)
	require.NoError(t, r.Schedule(0, 5))

	next := r.NextReminder(time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local))
	require.NotNil(t, next)
	assertSameTime(t, time.Date(2024, 3, 11, 0, 5, 0, 0, time.Local), *next)
}

func TestReminderScheduler_InvalidTime(t *testing.T) {
	r := NewReminderScheduler(nil, 10)
	assert.Error(t, r.Schedule(25, 0))
}

func TestReminderScheduler_Fire(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewReminderScheduler(notifier, 10)

	r.fire()
	assert.Equal(t, []string{"Daily Bible Reading"}, notifier.titles)
	assert.Equal(t, []string{"Your 10 verses are ready for today."}, notifier.bodies)

	notifier.err = errors.New("denied")
	r.fire()
	assert.Len(t, notifier.titles, 2)
}

func TestReminderScheduler_StartStop(t *testing.T) {
	r := NewReminderScheduler(nil, 10)
	r.Start()
	r.Start()
	require.NoError(t, r.Schedule(7, 0))
	r.CancelAll()
	r.Stop()
	r.Stop()
}

func assertSameTime(t *testing.T, expected, actual time.Time) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "expected %v, got %v", expected, actual)
}
