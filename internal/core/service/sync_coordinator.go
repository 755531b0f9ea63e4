package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/casa-moreno/catalog-system/internal/api/metrics"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

// syncTask is one tracked operation. done is closed exactly once, after
// result/failure are set, so a poller that sees done closed also sees the
// terminal values.
type syncTask struct {
	done    chan struct{}
	result  string
	failure error
}

// SyncCoordinator tracks long-running operations under opaque ids.
//
// Tasks that are submitted but never polled stay in the registry until
// process exit; there is no sweep and no cancellation. The in-flight gauge
// makes any such accumulation visible.
type SyncCoordinator struct {
	tasks  sync.Map // task id -> *syncTask
	base   context.Context
	logger zerolog.Logger
}

// NewSyncCoordinator creates a coordinator whose task goroutines derive from
// base. Cancelling base stops work for tasks still running at shutdown.
func NewSyncCoordinator(base context.Context, logger zerolog.Logger) *SyncCoordinator {
	if base == nil {
		base = context.Background()
	}
	return &SyncCoordinator{base: base, logger: logger}
}

// Submit registers op under a fresh unguessable id and starts it on its own
// goroutine. Returns immediately, regardless of how long op runs.
func (c *SyncCoordinator) Submit(op ports.TaskOperation) string {
	taskID := uuid.NewString()
	task := &syncTask{done: make(chan struct{})}
	c.tasks.Store(taskID, task)
	metrics.SyncTasksInflight.Inc()

	go func() {
		defer close(task.done)
		result, err := op(c.base)
		if err != nil {
			task.failure = err
			metrics.SyncTasksTotal.WithLabelValues("failed").Inc()
			c.logger.Error().Err(err).Str("task_id", taskID).Msg("sync task failed")
			return
		}
		task.result = result
		metrics.SyncTasksTotal.WithLabelValues("completed").Inc()
		c.logger.Info().Str("task_id", taskID).Msg("sync task completed")
	}()

	return taskID
}

// Poll reports the state of a task without blocking. A terminal result is
// claimed with LoadAndDelete, the single atomic step that both reads and
// removes the entry: out of any number of concurrent polls, exactly one
// returns COMPLETED or FAILED and the rest see RUNNING or NOT_FOUND.
func (c *SyncCoordinator) Poll(taskID string) ports.TaskStatus {
	v, ok := c.tasks.Load(taskID)
	if !ok {
		return ports.TaskStatus{State: ports.TaskNotFound}
	}
	task := v.(*syncTask)

	select {
	case <-task.done:
	default:
		return ports.TaskStatus{State: ports.TaskRunning}
	}

	// Terminal. Claim the entry; losing the race means another poller
	// already delivered the result.
	if _, claimed := c.tasks.LoadAndDelete(taskID); !claimed {
		return ports.TaskStatus{State: ports.TaskNotFound}
	}
	metrics.SyncTasksInflight.Dec()

	if task.failure != nil {
		return ports.TaskStatus{State: ports.TaskFailed, Error: task.failure.Error()}
	}
	return ports.TaskStatus{State: ports.TaskCompleted, Report: task.result}
}
