package port

import (
	"context"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/request"
)

type GoalRepository interface {
	GetAll(ctx context.Context) ([]domain.Goal, error)
	GetByID(ctx context.Context, id int64) (domain.Goal, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, goal domain.Goal) (int64, error)
	Update(ctx context.Context, goal domain.Goal) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type GoalService interface {
	Create(ctx context.Context, req request.GoalRequest) (domain.Goal, error)
	List(ctx context.Context) ([]domain.Goal, error)
	Get(ctx context.Context, id int64) (domain.Goal, error)
	Update(ctx context.Context, id int64, req request.GoalRequest) (domain.Goal, error)
	Delete(ctx context.Context, id int64) error
}
