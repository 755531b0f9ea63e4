package ports

import "context"

// TaskState is the observable lifecycle of a coordinated task.
type TaskState string

const (
	TaskRunning   TaskState = "RUNNING"
	TaskCompleted TaskState = "COMPLETED"
	TaskFailed    TaskState = "FAILED"
	TaskNotFound  TaskState = "NOT_FOUND"
)

// TaskStatus is the result of a single poll. Report is set only on
// COMPLETED, Error only on FAILED.
type TaskStatus struct {
	State  TaskState `json:"status"`
	Report string    `json:"report,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// TaskOperation is a long-running unit of work tracked by the coordinator.
type TaskOperation func(ctx context.Context) (string, error)

// SyncCoordinator registers in-flight operations under opaque ids and hands
// each terminal result to at most one successful poll.
type SyncCoordinator interface {
	// Submit starts op on its own goroutine and returns the task id
	// without blocking on the operation.
	Submit(op TaskOperation) string
	// Poll reports the task's state. A terminal state is removed from the
	// registry in the same atomic step that reads it: exactly one poll
	// observes COMPLETED or FAILED, later polls observe NOT_FOUND.
	Poll(taskID string) TaskStatus
}
