package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"goalsapp/internal/adapter/database"
	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/port"
	. "goalsapp/pkg/tracing"
)

var taskColumns = []string{"id", "goal_id", "title", "description", "completed", "created_at"}

type TaskRepository struct {
	db      *database.DB
	metrics *AppMetrics
}

func NewTaskRepository(db *database.DB, metrics *AppMetrics) port.TaskRepository {
	return &TaskRepository{
		db:      db,
		metrics: metrics,
	}
}

func (tr *TaskRepository) GetAllByGoal(ctx context.Context, goalID int64) ([]domain.Task, error) {
	tasks := []domain.Task{}

	err := tr.run(ctx, "select", func(ctx context.Context) error {
		return tr.db.QueryAll(ctx, &tasks, tr.db.QueryBuilder.
			Select(taskColumns...).
			From("tasks").
			Where(sq.Eq{"goal_id": goalID}).
			OrderBy("created_at DESC", "id DESC"))
	})

	if err != nil {
		return []domain.Task{}, err
	}

	return tasks, nil
}

func (tr *TaskRepository) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	var task domain.Task

	err := tr.run(ctx, "select", func(ctx context.Context) error {
		return tr.db.QueryOne(ctx, &task, tr.db.QueryBuilder.
			Select(taskColumns...).
			From("tasks").
			Where(sq.Eq{"id": id}).
			Limit(1))
	})

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

// Create inserts the task. A goal deleted in the meantime surfaces as
// domain.ErrGoalNotFound.
func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (int64, error) {
	var id int64

	err := tr.run(ctx, "insert", func(ctx context.Context) (err error) {
		id, err = tr.db.InsertReturningID(ctx, tr.db.QueryBuilder.
			Insert("tasks").
			Columns("goal_id", "title", "description", "completed").
			Values(task.GoalID, task.Title, domain.NullableString(task.Description), task.Completed.Bool()))
		return err
	})

	return id, err
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) (int64, error) {
	var affected int64

	err := tr.run(ctx, "update", func(ctx context.Context) (err error) {
		affected, err = tr.db.ExecAffected(ctx, tr.db.QueryBuilder.
			Update("tasks").
			SetMap(task.ToMap()).
			Where(sq.Eq{"id": task.ID}))
		return err
	})

	return affected, err
}

func (tr *TaskRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var affected int64

	err := tr.run(ctx, "delete", func(ctx context.Context) (err error) {
		affected, err = tr.db.ExecAffected(ctx, tr.db.QueryBuilder.
			Delete("tasks").
			Where(sq.Eq{"id": id}))
		return err
	})

	return affected, err
}

func (tr *TaskRepository) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	tr.metrics.RecordDatabaseOperation(ctx, operation, "tasks")
	return DatabaseSpanWrapper(ctx, tr.db.Dialect, "tasks", operation, fn)
}
