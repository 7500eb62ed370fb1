package taskqueue

import (
	"context"
	"errors"
)

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// ErrTaskAlreadyExists is returned when a named task collides with one the
// queue already holds or has recently held.
var ErrTaskAlreadyExists = errors.New("task already exists")

type TaskQueue interface {
	CreateTask(ctx context.Context, task *TimerTask) (*TaskResponse, error)
	// DeleteTask treats a task that is already gone as deleted.
	DeleteTask(ctx context.Context, taskName string) error
}
