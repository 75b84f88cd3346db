package factory

import (
	fab "github.com/Goldziher/fabricator"

	"goalsapp/internal/core/domain"
)

type goalSeed struct {
	Name string
}

type taskSeed struct {
	Title       string
	Description string
}

// NewGoal builds an unsaved goal with a generated name. Keys of customData
// override seed fields by name.
func NewGoal(customData ...map[string]any) domain.Goal {
	seed := fab.New(goalSeed{}).Build(customData...)

	return domain.Goal{Name: seed.Name}
}

// NewTask builds an unsaved, open task for goalID.
func NewTask(goalID int64, customData ...map[string]any) domain.Task {
	seed := fab.New(taskSeed{}).Build(customData...)

	task := domain.Task{
		GoalID: goalID,
		Title:  seed.Title,
	}

	if seed.Description != "" {
		task.Description = &seed.Description
	}

	return task
}
