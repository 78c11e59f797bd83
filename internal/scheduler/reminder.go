package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const ReminderTitle = "Daily Bible Reading"

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(title, body string) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(title, body string) error {
	log.Printf("%s: %s", title, body)
	return nil
}

// ReminderBody is the text of the daily reminder for a plan of pageSize verses.
func ReminderBody(pageSize int) string {
	return fmt.Sprintf("Your %d verses are ready for today.", pageSize)
}

// ReminderScheduler delivers a daily recurring reminder at a fixed local time.
type ReminderScheduler struct {
	notifier Notifier
	body     string

	cron    *cron.Cron
	mu      sync.Mutex
	entries []cron.EntryID
	started bool
}

func NewReminderScheduler(notifier Notifier, pageSize int) *ReminderScheduler {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ReminderScheduler{
		notifier: notifier,
		body:     ReminderBody(pageSize),
		cron:     newCron(),
	}
}

// Start begins delivering scheduled reminders.
func (r *ReminderScheduler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.cron.Start()
	r.started = true
}

// Stop halts delivery and waits for an in-flight reminder.
func (r *ReminderScheduler) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	stopped := r.cron.Stop()
	r.started = false
	r.mu.Unlock()

	<-stopped.Done()
	log.Printf("Reminder scheduler: stopped")
}

// Schedule adds a daily reminder at hour:minute.
func (r *ReminderScheduler) Schedule(hour, minute int) error {
	spec := fmt.Sprintf("%d %d * * *", minute, hour)

	r.mu.Lock()
	defer r.mu.Unlock()

	entryID, err := r.cron.AddFunc(spec, r.fire)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder '%s': %w", spec, err)
	}
	r.entries = append(r.entries, entryID)
	return nil
}

// CancelAll removes every pending reminder.
func (r *ReminderScheduler) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.entries {
		r.cron.Remove(id)
	}
	r.entries = nil
}

// NextReminder returns the next delivery time after now, or nil if none is scheduled.
func (r *ReminderScheduler) NextReminder(now time.Time) *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *time.Time
	for _, entry := range r.cron.Entries() {
		t := entry.Schedule.Next(now)
		if next == nil || t.Before(*next) {
			next = &t
		}
	}
	return next
}

func (r *ReminderScheduler) fire() {
	if err := r.notifier.Notify(ReminderTitle, r.body); err != nil {
		log.Printf("Reminder scheduler: failed to deliver reminder: %v", err)
	}
}
