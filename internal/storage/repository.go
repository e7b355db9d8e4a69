package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/tempo/internal/model"
)

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrEmptyPatch = errors.New("storage: empty patch")
)

// Repository is the task store. Writes are single statements or, for
// CreateTasks, one transaction; callers treat a failed write as no change.
type Repository interface {
	CreateTask(ctx context.Context, in model.Task) (model.Task, error)
	CreateTasks(ctx context.Context, in []model.Task) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	UpdateFields(ctx context.Context, id string, patch model.TaskPatch) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	AddDependency(ctx context.Context, taskID, dependsOnID string) error
	RemoveDependency(ctx context.Context, taskID, dependsOnID string) error
}
