package scheduler

import (
	"errors"
	"sync"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/tasks"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (q *recordingQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "id", nil
}

func (q *recordingQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func TestMaintenanceScheduler_EnqueuesOnStart(t *testing.T) {
	queue := &recordingQueue{}
	m := NewMaintenanceScheduler(queue, "", tasks.PruneHistoryTask{RetentionDays: 7})
	defer m.Stop()

	require.NoError(t, m.Start())
	require.NoError(t, m.Start())

	require.Equal(t, 1, queue.count())
	assert.Equal(t, tasks.PruneHistoryTask{RetentionDays: 7}, queue.tasks[0])
	assert.Equal(t, DefaultMaintenanceSchedule, m.schedule)
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	queue := &recordingQueue{}
	m := NewMaintenanceScheduler(queue, "not a schedule", tasks.PruneHistoryTask{})

	assert.Error(t, m.Start())
	assert.Zero(t, queue.count())
}

func TestMaintenanceScheduler_EnqueueFailureIsLogged(t *testing.T) {
	queue := &recordingQueue{err: errors.New("queue closed")}
	m := NewMaintenanceScheduler(queue, "", tasks.PruneHistoryTask{})
	defer m.Stop()

	assert.NoError(t, m.Start())
	assert.Zero(t, queue.count())
}

func TestMaintenanceScheduler_StopWithoutStart(t *testing.T) {
	m := NewMaintenanceScheduler(&recordingQueue{}, "")
	m.Stop()
}
