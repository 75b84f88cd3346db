package service

import (
	"context"
	"fmt"
	"strings"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/request"
	"goalsapp/internal/core/port"
	"goalsapp/internal/core/telemetry"
)

type TaskService struct {
	repo      port.TaskRepository
	goals     port.GoalRepository
	validator port.Validator
	recorder  port.OperationRecorder
}

func NewTaskService(repo port.TaskRepository, goals port.GoalRepository, validator port.Validator, recorder port.OperationRecorder) *TaskService {
	if recorder == nil {
		recorder = telemetry.NewNoOpProbe()
	}

	return &TaskService{
		repo:      repo,
		goals:     goals,
		validator: validator,
		recorder:  recorder,
	}
}

func (ts *TaskService) Create(ctx context.Context, goalID int64, req request.TaskRequest) (task domain.Task, err error) {
	defer telemetry.StartOperation(ts.recorder, ctx, "task", "create").End(&err)

	if !req.Title.Set || req.Title.Null || req.Title.Value == "" {
		return domain.Task{}, domain.NewValidationError("title", "task title is required")
	}

	if err := ts.ensureGoal(ctx, goalID); err != nil {
		return domain.Task{}, err
	}

	candidate := domain.Task{
		GoalID:    goalID,
		Title:     req.Title.Value,
		Completed: false,
	}

	if description := req.Description.Or(""); description != "" {
		candidate.Description = &description
	}

	if err := ts.validator.ValidateStruct(candidate); err != nil {
		return domain.Task{}, err
	}

	id, err := ts.repo.Create(ctx, candidate)
	if err != nil {
		return domain.Task{}, err
	}

	task, err = ts.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("reading task %d after insert: %v", id, err)
	}

	return task, nil
}

func (ts *TaskService) ListByGoal(ctx context.Context, goalID int64) (tasks []domain.Task, err error) {
	defer telemetry.StartOperation(ts.recorder, ctx, "task", "list").End(&err)

	if err := ts.ensureGoal(ctx, goalID); err != nil {
		return []domain.Task{}, err
	}

	tasks, err = ts.repo.GetAllByGoal(ctx, goalID)
	if err != nil {
		return []domain.Task{}, err
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}

func (ts *TaskService) Get(ctx context.Context, id int64) (task domain.Task, err error) {
	defer telemetry.StartOperation(ts.recorder, ctx, "task", "get").End(&err)

	return ts.repo.GetByID(ctx, id)
}

func (ts *TaskService) Update(ctx context.Context, id int64, req request.TaskRequest) (task domain.Task, err error) {
	defer telemetry.StartOperation(ts.recorder, ctx, "task", "update").End(&err)

	if !req.HasAnyField() {
		return domain.Task{}, domain.ErrNoTaskFields
	}

	if req.Title.Set && (req.Title.Null || strings.TrimSpace(req.Title.Value) == "") {
		return domain.Task{}, domain.NewValidationError("title", "task title cannot be empty")
	}

	existing, err := ts.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	merged := existing

	if req.Title.Set {
		merged.Title = req.Title.Value
	}

	if req.Description.Set {
		if req.Description.Null {
			merged.Description = nil
		} else {
			description := req.Description.Value
			merged.Description = &description
		}
	}

	if req.Completed.Set {
		merged.Completed = req.Completed.Value
	}

	if err := ts.validator.ValidateStruct(merged); err != nil {
		return domain.Task{}, err
	}

	affected, err := ts.repo.Update(ctx, merged)
	if err != nil {
		return domain.Task{}, err
	}

	if affected == 0 && !existing.SameContent(merged) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return ts.repo.GetByID(ctx, id)
}

func (ts *TaskService) Delete(ctx context.Context, id int64) (err error) {
	defer telemetry.StartOperation(ts.recorder, ctx, "task", "delete").End(&err)

	affected, err := ts.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (ts *TaskService) ensureGoal(ctx context.Context, goalID int64) error {
	exists, err := ts.goals.Exists(ctx, goalID)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrGoalNotFound
	}

	return nil
}
