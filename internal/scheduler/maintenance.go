package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
)

// DefaultMaintenanceSchedule runs housekeeping once a day at 03:30.
const DefaultMaintenanceSchedule = "30 3 * * *"

// TaskEnqueuer adds a task to the background queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// MaintenanceScheduler enqueues housekeeping tasks on a cron schedule. The tasks
// themselves run on the background queue, not on the cron goroutine.
type MaintenanceScheduler struct {
	queue    TaskEnqueuer
	schedule string
	tasks    []backlite.Task

	cron    *cron.Cron
	mu      sync.Mutex
	started bool
}

func NewMaintenanceScheduler(queue TaskEnqueuer, schedule string, tasks ...backlite.Task) *MaintenanceScheduler {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	return &MaintenanceScheduler{
		queue:    queue,
		schedule: schedule,
		tasks:    tasks,
		cron:     newCron(),
	}
}

// Start enqueues every task once, then again on each scheduled run.
func (m *MaintenanceScheduler) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}

	if _, err := m.cron.AddFunc(m.schedule, m.enqueueAll); err != nil {
		return fmt.Errorf("invalid maintenance schedule '%s': %w", m.schedule, err)
	}

	m.enqueueAll()
	m.cron.Start()
	m.started = true
	log.Printf("Maintenance scheduler: started with schedule '%s'", m.schedule)
	return nil
}

// Stop halts the schedule. Tasks already enqueued are left to the queue.
func (m *MaintenanceScheduler) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	stopped := m.cron.Stop()
	m.started = false
	m.mu.Unlock()

	<-stopped.Done()
}

func (m *MaintenanceScheduler) enqueueAll() {
	for _, task := range m.tasks {
		if _, err := m.queue.Enqueue(task); err != nil {
			log.Printf("Maintenance scheduler: failed to enqueue %s: %v", task.Config().Name, err)
		}
	}
}
