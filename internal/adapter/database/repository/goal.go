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

var goalColumns = []string{"id", "name", "start_date", "planned_end_date", "created_at", "updated_at"}

type GoalRepository struct {
	db      *database.DB
	metrics *AppMetrics
}

func NewGoalRepository(db *database.DB, metrics *AppMetrics) port.GoalRepository {
	return &GoalRepository{
		db:      db,
		metrics: metrics,
	}
}

// GetAll returns every goal, newest first.
func (gr *GoalRepository) GetAll(ctx context.Context) ([]domain.Goal, error) {
	goals := []domain.Goal{}

	err := gr.run(ctx, "select", func(ctx context.Context) error {
		return gr.db.QueryAll(ctx, &goals, gr.db.QueryBuilder.
			Select(goalColumns...).
			From("goals").
			OrderBy("created_at DESC", "id DESC"))
	})

	if err != nil {
		return []domain.Goal{}, err
	}

	return goals, nil
}

func (gr *GoalRepository) GetByID(ctx context.Context, id int64) (domain.Goal, error) {
	var goal domain.Goal

	err := gr.run(ctx, "select", func(ctx context.Context) error {
		return gr.db.QueryOne(ctx, &goal, gr.db.QueryBuilder.
			Select(goalColumns...).
			From("goals").
			Where(sq.Eq{"id": id}).
			Limit(1))
	})

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, domain.ErrGoalNotFound
	}

	if err != nil {
		return domain.Goal{}, err
	}

	return goal, nil
}

func (gr *GoalRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found int

	err := gr.run(ctx, "select", func(ctx context.Context) error {
		return gr.db.QueryOne(ctx, &found, gr.db.QueryBuilder.
			Select("1").
			From("goals").
			Where(sq.Eq{"id": id}).
			Limit(1))
	})

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	return err == nil, err
}

func (gr *GoalRepository) Create(ctx context.Context, goal domain.Goal) (int64, error) {
	var id int64

	err := gr.run(ctx, "insert", func(ctx context.Context) (err error) {
		id, err = gr.db.InsertReturningID(ctx, gr.db.QueryBuilder.
			Insert("goals").
			Columns("name", "start_date", "planned_end_date").
			Values(goal.Name, goal.StartDate.Nullable(), goal.PlannedEndDate.Nullable()))
		return err
	})

	return id, err
}

// Update writes every editable column and returns the number of matched rows.
func (gr *GoalRepository) Update(ctx context.Context, goal domain.Goal) (int64, error) {
	var affected int64

	err := gr.run(ctx, "update", func(ctx context.Context) (err error) {
		affected, err = gr.db.ExecAffected(ctx, gr.db.QueryBuilder.
			Update("goals").
			SetMap(goal.ToMap()).
			Where(sq.Eq{"id": goal.ID}))
		return err
	})

	return affected, err
}

// DeleteByID removes the goal and, through the foreign key, its tasks.
func (gr *GoalRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var affected int64

	err := gr.run(ctx, "delete", func(ctx context.Context) (err error) {
		affected, err = gr.db.ExecAffected(ctx, gr.db.QueryBuilder.
			Delete("goals").
			Where(sq.Eq{"id": id}))
		return err
	})

	return affected, err
}

func (gr *GoalRepository) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	gr.metrics.RecordDatabaseOperation(ctx, operation, "goals")
	return DatabaseSpanWrapper(ctx, gr.db.Dialect, "goals", operation, fn)
}
