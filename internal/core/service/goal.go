package service

import (
	"context"
	"fmt"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/request"
	"goalsapp/internal/core/port"
	"goalsapp/internal/core/telemetry"
)

type GoalService struct {
	repo      port.GoalRepository
	validator port.Validator
	recorder  port.OperationRecorder
}

func NewGoalService(repo port.GoalRepository, validator port.Validator, recorder port.OperationRecorder) *GoalService {
	if recorder == nil {
		recorder = telemetry.NewNoOpProbe()
	}

	return &GoalService{
		repo:      repo,
		validator: validator,
		recorder:  recorder,
	}
}

func (gs *GoalService) Create(ctx context.Context, req request.GoalRequest) (goal domain.Goal, err error) {
	defer telemetry.StartOperation(gs.recorder, ctx, "goal", "create").End(&err)

	if !req.Name.Set || req.Name.Null || req.Name.Value == "" {
		return domain.Goal{}, domain.NewValidationError("name", "goal name is required")
	}

	startDate, err := domain.ParseOptionalDate(string(req.StartDate.Or("")))
	if err != nil {
		return domain.Goal{}, err
	}

	plannedEndDate, err := domain.ParseOptionalDate(string(req.PlannedEndDate.Or("")))
	if err != nil {
		return domain.Goal{}, err
	}

	candidate := domain.Goal{
		Name:           req.Name.Value,
		StartDate:      startDate,
		PlannedEndDate: plannedEndDate,
	}

	if err := gs.validator.ValidateStruct(candidate); err != nil {
		return domain.Goal{}, err
	}

	id, err := gs.repo.Create(ctx, candidate)
	if err != nil {
		return domain.Goal{}, err
	}

	goal, err = gs.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("reading goal %d after insert: %v", id, err)
	}

	return goal, nil
}

func (gs *GoalService) List(ctx context.Context) (goals []domain.Goal, err error) {
	defer telemetry.StartOperation(gs.recorder, ctx, "goal", "list").End(&err)

	goals, err = gs.repo.GetAll(ctx)
	if err != nil {
		return []domain.Goal{}, err
	}

	return goals, nil
}

func (gs *GoalService) Get(ctx context.Context, id int64) (goal domain.Goal, err error) {
	defer telemetry.StartOperation(gs.recorder, ctx, "goal", "get").End(&err)

	return gs.repo.GetByID(ctx, id)
}

// Update applies only the keys present in req. Dates sent empty or null are
// cleared, a present name must not be empty.
func (gs *GoalService) Update(ctx context.Context, id int64, req request.GoalRequest) (goal domain.Goal, err error) {
	defer telemetry.StartOperation(gs.recorder, ctx, "goal", "update").End(&err)

	if !req.HasAnyField() {
		return domain.Goal{}, domain.ErrNoGoalFields
	}

	existing, err := gs.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Goal{}, err
	}

	merged := existing

	if req.Name.Set {
		if req.Name.Null || req.Name.Value == "" {
			return domain.Goal{}, domain.NewValidationError("name", "goal name cannot be empty")
		}

		merged.Name = req.Name.Value
	}

	if req.StartDate.Set {
		if merged.StartDate, err = domain.ParseOptionalDate(string(req.StartDate.Or(""))); err != nil {
			return domain.Goal{}, err
		}
	}

	if req.PlannedEndDate.Set {
		if merged.PlannedEndDate, err = domain.ParseOptionalDate(string(req.PlannedEndDate.Or(""))); err != nil {
			return domain.Goal{}, err
		}
	}

	if err := gs.validator.ValidateStruct(merged); err != nil {
		return domain.Goal{}, err
	}

	affected, err := gs.repo.Update(ctx, merged)
	if err != nil {
		return domain.Goal{}, err
	}

	// Nothing matched: a no-op write is answered with the current row, a real
	// change means the goal was deleted after the existence check.
	if affected == 0 && !existing.SameContent(merged) {
		return domain.Goal{}, domain.ErrGoalNotFound
	}

	return gs.repo.GetByID(ctx, id)
}

func (gs *GoalService) Delete(ctx context.Context, id int64) (err error) {
	defer telemetry.StartOperation(gs.recorder, ctx, "goal", "delete").End(&err)

	affected, err := gs.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}
