package port

import (
	"context"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/request"
)

type TaskRepository interface {
	GetAllByGoal(ctx context.Context, goalID int64) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (int64, error)
	Update(ctx context.Context, task domain.Task) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type TaskService interface {
	Create(ctx context.Context, goalID int64, req request.TaskRequest) (domain.Task, error)
	ListByGoal(ctx context.Context, goalID int64) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (domain.Task, error)
	Update(ctx context.Context, id int64, req request.TaskRequest) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
}
